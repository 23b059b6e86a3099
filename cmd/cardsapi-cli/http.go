package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
)

func get(url string, result interface{}) error {
	return do(http.MethodGet, url, nil, result)
}

func post(url string, body interface{}, result interface{}) error {
	return do(http.MethodPost, url, body, result)
}

func patch(url string, body interface{}, result interface{}) error {
	return do(http.MethodPatch, url, body, result)
}

func del(url string) error {
	return do(http.MethodDelete, url, nil, nil)
}

func do(method string, url string, body interface{}, result interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(bs)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}

	bs, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode >= 300 {
		return fmt.Errorf("http request failed: %v: %v", res.Status, string(bs))
	}

	if result == nil {
		return nil
	}
	return json.Unmarshal(bs, result)
}

// GetText is like get but returns the raw response body.
func getText(url string) (string, error) {
	res, err := http.Get(url)
	if err != nil {
		return "", err
	}

	bs, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode >= 300 {
		return "", fmt.Errorf("http request failed: %v: %v", res.Status, string(bs))
	}

	return string(bs), nil
}
