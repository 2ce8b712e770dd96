package inventory

import (
	"context"
	"fmt"

	"github.com/calvinmclean/babyapi"
)

// Client posts records to an inventory service
type Client struct {
	client *babyapi.Client[*record]
}

type record struct {
	// include NilResource so we don't implement Render/Bind which are not needed
	*babyapi.NilResource
	Record
}

func (r record) GetID() string {
	return r.Record.ID
}

// NewClient creates a client for the service at addr
func NewClient(addr string) *Client {
	client := babyapi.NewClient[*record](addr, "/inventory")
	return &Client{client: client}
}

// Record implements controller.Recorder
func (c *Client) Record(ctx context.Context, r Record) error {
	resp, err := c.client.Post(ctx, &record{Record: r})
	if err != nil {
		return fmt.Errorf("error posting inventory record: %w", err)
	}
	if resp.Data == nil || resp.Data.GetID() == "" {
		return fmt.Errorf("inventory service returned no id for %s", r.Bin)
	}
	return nil
}
