// Package compare exposes dataset comparisons over HTTP.
//
// Input files are read from the inputs folder of the bucket, database tables from the
// configured connection. Every comparison gets a uuid; with save set, the result workbook
// is stored as results/<id>.xlsx and can later be listed, downloaded or removed.
//
// # HTTP Endpoints
//
//   - POST /compare : Compares two stored files.
//   - POST /compare/tables : Compares two database tables.
//   - GET /compare/results : Lists stored result workbooks.
//   - GET /compare/results/:id : Downloads a result workbook.
//   - DELETE /compare/results/:id : Removes a result workbook.
//
// File reports are cached for compare.cache_ttl_seconds; concurrent identical requests
// share a single run.
package compare
