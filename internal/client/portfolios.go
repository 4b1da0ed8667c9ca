package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/taskwire-io/asana/internal/http"
	"github.com/taskwire-io/asana/pkg/asana"
)

// PortfoliosClient implements asana.PortfoliosClient.
type PortfoliosClient struct {
	httpClient *http.Client
}

// NewPortfoliosClient creates a new portfolios client.
func NewPortfoliosClient(httpClient *http.Client) *PortfoliosClient {
	return &PortfoliosClient{httpClient: httpClient}
}

// Create implements asana.PortfoliosClient.Create. Required params are
// validated locally; no request is made when one is missing.
func (c *PortfoliosClient) Create(ctx context.Context, request *asana.PortfolioCreateRequest) (*asana.Portfolio, error) {
	payload := asana.NewPayload().
		Extra(request.Extra).
		Set("workspace", request.Workspace).
		Set("name", request.Name).
		Set("color", request.Color)

	err := payload.Require("workspace", "name")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/portfolios", payload.Wrap())
	if err != nil {
		return nil, fmt.Errorf("creating portfolio: %w", err)
	}

	return decodeSingle[asana.Portfolio](resp.Body, "portfolio")
}

// Get implements asana.PortfoliosClient.Get.
func (c *PortfoliosClient) Get(ctx context.Context, gid string, params *asana.QueryParams) (*asana.Portfolio, error) {
	path := "/portfolios/" + gid

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("getting portfolio: %w", err)
	}

	return decodeSingle[asana.Portfolio](resp.Body, "portfolio")
}

// List implements asana.PortfoliosClient.List. The remote API requires both
// the workspace and owner filters, so they are checked before the request.
func (c *PortfoliosClient) List(ctx context.Context, request *asana.PortfolioListRequest) (*asana.PortfolioList, error) {
	err := asana.NewPayload().
		Set("workspace", request.Workspace).
		Set("owner", request.Owner).
		Require("workspace", "owner")
	if err != nil {
		return nil, err
	}

	params := request.Params
	if params == nil {
		params = asana.NewQueryParams()
	}

	query := params.ToValues()
	query.Set("workspace", request.Workspace)
	query.Set("owner", request.Owner)

	resp, err := c.httpClient.Get(ctx, "/portfolios", query)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}

	return decodeList[asana.Portfolio](resp.Body, "portfolios")
}

// Update implements asana.PortfoliosClient.Update. Empty fields are dropped
// from the body so the server only touches what the caller set.
func (c *PortfoliosClient) Update(ctx context.Context, gid string, request *asana.PortfolioUpdateRequest) (*asana.Portfolio, error) {
	payload := asana.NewPayload().
		Extra(request.Extra).
		Set("name", request.Name).
		Set("color", request.Color)

	path := "/portfolios/" + gid

	resp, err := c.httpClient.Put(ctx, path, payload.Wrap())
	if err != nil {
		return nil, fmt.Errorf("updating portfolio: %w", err)
	}

	return decodeSingle[asana.Portfolio](resp.Body, "portfolio")
}

// Delete implements asana.PortfoliosClient.Delete. The endpoint returns an
// empty data object; success is a nil error.
func (c *PortfoliosClient) Delete(ctx context.Context, gid string) error {
	path := "/portfolios/" + gid

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting portfolio: %w", err)
	}

	return nil
}

// AddItem implements asana.PortfoliosClient.AddItem.
func (c *PortfoliosClient) AddItem(ctx context.Context, gid, itemGID string) error {
	payload := asana.NewPayload().Set("item", itemGID)

	err := payload.Require("item")
	if err != nil {
		return err
	}

	path := "/portfolios/" + gid + "/addItem"

	_, err = c.httpClient.Post(ctx, path, payload.Wrap())
	if err != nil {
		return fmt.Errorf("adding portfolio item: %w", err)
	}

	return nil
}

// RemoveItem implements asana.PortfoliosClient.RemoveItem.
func (c *PortfoliosClient) RemoveItem(ctx context.Context, gid, itemGID string) error {
	payload := asana.NewPayload().Set("item", itemGID)

	err := payload.Require("item")
	if err != nil {
		return err
	}

	path := "/portfolios/" + gid + "/removeItem"

	_, err = c.httpClient.Post(ctx, path, payload.Wrap())
	if err != nil {
		return fmt.Errorf("removing portfolio item: %w", err)
	}

	return nil
}

// ListItems implements asana.PortfoliosClient.ListItems. Items in a
// portfolio are heterogeneous, so they decode as GenericResource.
func (c *PortfoliosClient) ListItems(ctx context.Context, gid string, params *asana.QueryParams) (*asana.ListResponse[asana.GenericResource], error) {
	path := "/portfolios/" + gid + "/items"

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing portfolio items: %w", err)
	}

	return decodeList[asana.GenericResource](resp.Body, "portfolio items")
}

// AddMembers implements asana.PortfoliosClient.AddMembers.
func (c *PortfoliosClient) AddMembers(ctx context.Context, gid string, memberGIDs []string) (*asana.Portfolio, error) {
	payload := asana.NewPayload().Set("members", strings.Join(memberGIDs, ","))

	err := payload.Require("members")
	if err != nil {
		return nil, err
	}

	path := "/portfolios/" + gid + "/addMembers"

	resp, err := c.httpClient.Post(ctx, path, payload.Wrap())
	if err != nil {
		return nil, fmt.Errorf("adding portfolio members: %w", err)
	}

	return decodeSingle[asana.Portfolio](resp.Body, "portfolio")
}

// RemoveMembers implements asana.PortfoliosClient.RemoveMembers.
func (c *PortfoliosClient) RemoveMembers(ctx context.Context, gid string, memberGIDs []string) (*asana.Portfolio, error) {
	payload := asana.NewPayload().Set("members", strings.Join(memberGIDs, ","))

	err := payload.Require("members")
	if err != nil {
		return nil, err
	}

	path := "/portfolios/" + gid + "/removeMembers"

	resp, err := c.httpClient.Post(ctx, path, payload.Wrap())
	if err != nil {
		return nil, fmt.Errorf("removing portfolio members: %w", err)
	}

	return decodeSingle[asana.Portfolio](resp.Body, "portfolio")
}

// AddCustomFieldSetting implements asana.PortfoliosClient.AddCustomFieldSetting.
func (c *PortfoliosClient) AddCustomFieldSetting(ctx context.Context, gid, customFieldGID string) error {
	payload := asana.NewPayload().Set("custom_field", customFieldGID)

	err := payload.Require("custom_field")
	if err != nil {
		return err
	}

	path := "/portfolios/" + gid + "/addCustomFieldSetting"

	_, err = c.httpClient.Post(ctx, path, payload.Wrap())
	if err != nil {
		return fmt.Errorf("adding custom field setting: %w", err)
	}

	return nil
}

// RemoveCustomFieldSetting implements asana.PortfoliosClient.RemoveCustomFieldSetting.
func (c *PortfoliosClient) RemoveCustomFieldSetting(ctx context.Context, gid, customFieldGID string) error {
	payload := asana.NewPayload().Set("custom_field", customFieldGID)

	err := payload.Require("custom_field")
	if err != nil {
		return err
	}

	path := "/portfolios/" + gid + "/removeCustomFieldSetting"

	_, err = c.httpClient.Post(ctx, path, payload.Wrap())
	if err != nil {
		return fmt.Errorf("removing custom field setting: %w", err)
	}

	return nil
}

// ListCustomFieldSettings implements asana.PortfoliosClient.ListCustomFieldSettings.
func (c *PortfoliosClient) ListCustomFieldSettings(ctx context.Context, gid string, params *asana.QueryParams) (*asana.ListResponse[asana.CustomFieldSetting], error) {
	path := "/portfolios/" + gid + "/custom_field_settings"

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing custom field settings: %w", err)
	}

	return decodeList[asana.CustomFieldSetting](resp.Body, "custom field settings")
}

// ListWithPath implements asana.PaginationClient for portfolios.
func (c *PortfoliosClient) ListWithPath(ctx context.Context, path string, params *asana.QueryParams) (*asana.ListResponse[asana.Portfolio], error) {
	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}

	return decodeList[asana.Portfolio](resp.Body, "portfolios")
}

// queryValues converts optional query params to url.Values.
func queryValues(params *asana.QueryParams) url.Values {
	if params == nil {
		return nil
	}

	return params.ToValues()
}
