// Package clock provides a tiny time abstraction.
//
// Handlers and use cases depend on Clocker instead of calling time.Now so
// response timestamps can be pinned in tests with Fixed.
package clock
