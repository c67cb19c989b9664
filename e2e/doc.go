//go:build e2e

// Package e2e provides end-to-end browser tests for the reader PWA.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present).
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// By default each test starts its own mock reader server (cmd/readermock)
// on a random port, so the suite is hermetic. Set READER_BASE_URL to the
// origin of a deployed reader instance to run the same tests against it;
// the suite waits for its /api/health endpoint before driving the browser.
//
// Test isolation:
// Each test owns its server and browser instance and never shares state
// with other tests, so tests can run in parallel and in any order.
package e2e
