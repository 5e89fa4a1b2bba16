// Package apitest builds requests and decodes responses when testing any HTTP API.
package apitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type RequestOption func(*http.Request)

func JsonReq() RequestOption {
	return SetReqHeader("Content-Type", "application/json")
}

func SetReqHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func SetQueryParam(key string, value interface{}) RequestOption {
	return SetQueryParams(map[string]interface{}{key: value})
}

func SetQueryParams(values map[string]interface{}) RequestOption {
	return func(r *http.Request) {
		query := r.URL.Query()
		for k, v := range values {
			query.Add(k, fmt.Sprintf("%v", v))
		}
		r.URL.RawQuery = query.Encode()
	}
}

func NewRequest(method, url string, body []byte, opts ...RequestOption) *http.Request {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	must(err)
	for _, o := range opts {
		o(req)
	}
	return req
}

func GetRequest(url string, opts ...RequestOption) *http.Request {
	return NewRequest(http.MethodGet, url, nil, opts...)
}

func MustMarshal(o interface{}) []byte {
	b, err := json.Marshal(o)
	must(err)
	return b
}

// MustUnmarshalFrom decodes a JSON object from r.
func MustUnmarshalFrom(r io.Reader) map[string]interface{} {
	var out map[string]interface{}
	must(json.NewDecoder(r).Decode(&out))
	return out
}

func must(e error) {
	if e != nil {
		panic(e)
	}
}
