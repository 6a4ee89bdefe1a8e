// Package loader registers and loads the application's features.
//
// Each feature implements Feature: it has a name, can be switched off, and
// registers its routes on the router passed to Load. The Manager keeps the
// registry and loads every enabled feature in registration order.
package loader
