// Package integrity provides health checks of the comparison infrastructure.
//
// # Checks Provided
//
//   - Structure: the bucket exists and holds the inputs and results folders.
//   - Inputs: lists the input objects and flags files no dataset reader accepts.
//   - Tables: the database tables to compare exist and carry the key column.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs the storage checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/inputs : Runs inputs check.
//   - GET /integrity/tables?tables=a,b&key=id : Runs tables check.
package integrity
