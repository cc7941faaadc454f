package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/eschool-portal/pkg/apiclient"
)

func queryValues(params map[string]string) url.Values {
	if len(params) == 0 {
		return nil
	}
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return values
}

func getJSON(ctx context.Context, client *apiclient.Client, tokens apiclient.TokenSource, path string, params map[string]string, dest interface{}) error {
	resp, err := client.Do(ctx, tokens, &apiclient.Request{Method: http.MethodGet, Path: path, Query: queryValues(params)})
	if err != nil {
		return err
	}
	return apiclient.DecodeJSON(resp, dest)
}

func sendJSON(ctx context.Context, client *apiclient.Client, tokens apiclient.TokenSource, method, path string, payload, dest interface{}) error {
	req, err := apiclient.NewJSONRequest(method, path, payload)
	if err != nil {
		return err
	}
	resp, err := client.Do(ctx, tokens, req)
	if err != nil {
		return err
	}
	return apiclient.DecodeJSON(resp, dest)
}
