// Package mycarbs provides the core of a personal carbohydrate tracker that
// turns a food and a quantity into a carb count and an insulin dose.
//
// The core functionalities include:
//   - Food Library: foods carry a carb density per 100g, one or more named
//     portions, a set of categories and optional quantity shortcuts. The
//     [Repository] keeps them in a key-value [Store] as a single JSON
//     collection and rewrites it as a whole on every change.
//   - Legacy Records: records written by older versions (a single
//     "category", a single "standardUnitName" portion) are upgraded by
//     [NormalizeFood] the moment they are decoded. Nothing past the
//     repository ever sees the legacy shape.
//   - Dose Calculation: [ComputeDose] is a pure function of a [Food], a
//     [QuantitySpec] and an insulin-to-carb ratio. It never touches storage.
//   - Profile: the [ProfileStore] persists the single user profile with the
//     ratio, the category list and the preferred quantity shortcuts.
//   - Import/Export: foods round-trip through a pretty-printed JSON array.
//
// The [App] type is the composition root binding these pieces to the
// current profile session. The package makes no medical claim: a dose is
// arithmetic on user supplied numbers.
package mycarbs
