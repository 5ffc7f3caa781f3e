/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
)

const affiliatePageSize = 100

type EventID int

type Event struct {
	ID      EventID
	Name    string
	EndDate time.Time
}

type apiAffiliateEventsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		EndDate string `json:"endDate"`
	} `json:"items"`
	HasNextPage bool `json:"hasNextPage"`
}

// GetAffiliateEvents returns up to limit of the affiliate's rated events,
// most recent first as the API lists them. A limit of 0 returns them all.
func (client *Client) GetAffiliateEvents(ctx context.Context,
	affiliateCode string, limit int) ([]Event, error) {

	var events []Event
	for offset := 0; ; offset += affiliatePageSize {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("pageSize", strconv.Itoa(affiliatePageSize))
		pageURL := fmt.Sprintf("%v/affiliates/%v/events?%v", client.baseURL,
			url.PathEscape(affiliateCode), q.Encode())

		var page apiAffiliateEventsResponse
		err := client.getJSON(ctx, client.httpClient1day, pageURL, "affiliate events",
			&page)
		if err != nil {
			return nil, err
		}
		client.logger.Debug("affiliate events page", zap.String("affiliate", affiliateCode),
			zap.Int("offset", offset), zap.Int("items", len(page.Items)))

		for _, item := range page.Items {
			id, err := strconv.Atoi(item.ID)
			if err != nil {
				client.logger.Debug("skipping event with invalid id",
					zap.String("id", item.ID))
				continue
			}
			endDate, _ := internal.ParseDateOrZero(item.EndDate)
			events = append(events, Event{ID: EventID(id), Name: item.Name,
				EndDate: endDate})
			if limit > 0 && len(events) == limit {
				return events, nil
			}
		}
		if !page.HasNextPage {
			return events, nil
		}
	}
}
