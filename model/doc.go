// Package model tracks token usage and prices it against the provider
// registry.
//
// # Cost Tracking
//
//	tracker := model.NewCostTracker()
//	tracker.Record("deepseek-chat", 1000, 500)  // input, output tokens
//	tracker.RecordCached("deepseek-chat", 800, 1000, 500)
//	cost := tracker.EstimatedCost()
//
// Prices are USD per million tokens as listed in package provider.
// Models missing from the registry are tracked but priced at zero.
package model
