package main

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

func client() *resty.Client {
	c := resty.New().SetBaseURL(apiFlag)
	if tokenFlag != "" {
		c.SetAuthToken(tokenFlag)
	}
	return c
}

func checkResponse(resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func doGet(path string) ([]byte, error) {
	return checkResponse(client().R().Get(path))
}

func doPostJSON(path string, payload interface{}) ([]byte, error) {
	return checkResponse(client().R().SetBody(payload).Post(path))
}

func doPutJSON(path string, payload interface{}) ([]byte, error) {
	return checkResponse(client().R().SetBody(payload).Put(path))
}

func doDelete(path string) error {
	_, err := checkResponse(client().R().Delete(path))
	return err
}
