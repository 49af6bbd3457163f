// Package domain contains the core business entities for fynda.
// Types here have no dependencies on adapters or external libraries.
package domain
