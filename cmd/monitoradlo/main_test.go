package main

import "testing"

func TestListenPort(t *testing.T) {
	tests := map[string]int{
		"127.0.0.1:7447": 7447,
		":8080":          8080,
		"[::1]:9000":     9000,
		"localhost":      80,
		"host:http":      80,
	}
	for addr, want := range tests {
		if got := listenPort(addr); got != want {
			t.Errorf("listenPort(%q) = %d, want %d", addr, got, want)
		}
	}
}
