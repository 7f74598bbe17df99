package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"dispatcher/internal/dto"
)

// apiClient тонкая обертка над HTTP API диспетчера.
type apiClient struct {
	baseURL string
	http    *http.Client
}

// apiError ответ сервиса с кодом не из 2xx.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

func (c *apiClient) onboardCustomer(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodPost, "/customers", dto.CustomerCreateRequest{ID: &id, Name: &name}, nil)
}

func (c *apiClient) onboardDriver(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodPost, "/drivers", dto.DriverCreateRequest{ID: &id, Name: &name}, nil)
}

func (c *apiClient) createOrder(ctx context.Context, customerID, itemID string, quantity int) (dto.Order, error) {
	var order dto.Order
	err := c.do(ctx, http.MethodPost, "/orders", dto.OrderCreateRequest{
		CustomerID: &customerID,
		ItemID:     &itemID,
		Quantity:   &quantity,
	}, &order)
	return order, err
}

func (c *apiClient) pickup(ctx context.Context, orderID, driverID string) error {
	return c.do(ctx, http.MethodPost, "/orders/"+orderID+"/pickup", dto.OrderDriverRequest{DriverID: &driverID}, nil)
}

func (c *apiClient) complete(ctx context.Context, orderID, driverID string) error {
	return c.do(ctx, http.MethodPost, "/orders/"+orderID+"/complete", dto.OrderDriverRequest{DriverID: &driverID}, nil)
}

func (c *apiClient) cancel(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPost, "/orders/"+orderID+"/cancel", nil, nil)
}

func (c *apiClient) rate(ctx context.Context, orderID string, stars int) error {
	return c.do(ctx, http.MethodPost, "/orders/"+orderID+"/rating", dto.OrderRatingRequest{Stars: &stars}, nil)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr dto.Error
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &apiError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
