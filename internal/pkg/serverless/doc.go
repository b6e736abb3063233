// Package serverless runs an http.Handler behind AWS Lambda by translating
// API Gateway proxy events into HTTP requests and the recorded response back
// into a proxy response.
package serverless
