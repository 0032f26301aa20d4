package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient vraća klijenta sa podešenim timeout-om za odlazne pozive.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
	}
}
