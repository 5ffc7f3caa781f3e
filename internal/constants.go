/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent          = "boylstonchessclub-pairings/0.1.0 (+https://github.com/mikeb26/boylstonchessclub-pairings)"
	BccUSCFAffiliateID = "A5000408"
	WebCacheBucket     = "bopmatic-boylstonchessclub-tdbot-prod-webcache"
)
