// Package driven defines the driven ports (secondary adapters) for fynda.
// These interfaces are implemented by infrastructure adapters: the search
// index, document stores, configuration, and connectors.
package driven
