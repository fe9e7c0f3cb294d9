// Package reporthttp exposes the report service over HTTP using go-router
// on its fiber adapter.
//
// Routes:
//
//	POST /api/v1/reports/generate  binary artifact download
//	POST /api/v1/reports/preview   assembled document as text/html
//	POST /api/v1/screenshot        captured page image, shown inline
//	GET  /healthz                  health check
package reporthttp
