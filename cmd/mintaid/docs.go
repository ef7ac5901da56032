package main

// General API documentation for swaggo. Regenerate docs/ with
// `swag init -g cmd/mintaid/docs.go -o docs`.
//
// @title           mintaid API
// @version         1.0
// @description     Local HTTP API for on-device text generation with a single GGUF model.
//
// @BasePath  /
//
// @schemes http
