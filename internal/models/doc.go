// Package models defines domain entities for the tripkit trip-planning core.
//
// The package contains three categories of types:
//
// 1. Permission types: the [Tier] label produced by the identity flow and
// consumed by the persistence gate.
//
// 2. Content entities: one item type per content domain
//   - [Countdown] : Days-until-trip counters
//   - [Budget] : Trip budget envelopes
//   - [PackingList] : Checklists of things to pack
//   - [PlannerDay] : Day-by-day itineraries
//
// All content entities embed [Meta] and implement the [Item] interface
// providing identity, timestamps, and validation.
//
// 3. Dashboard entities: [WidgetConfig] descriptors for dashboard slots and
// [PendingLink] records for widgets awaiting item creation.
package models
