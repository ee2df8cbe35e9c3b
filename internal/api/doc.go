// Package api handles incoming HTTP requests for the library resources:
// users, books and borrow records. Each resource has a handler that mounts
// its routes on a chi.Router, attaches request validation to POST and PUT,
// and answers with the success envelope or a centralized error response.
package api
