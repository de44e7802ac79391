// Package domain models scraped Nigerian power-grid data.
//
// # Data Sources
//
// Grid metrics come from the System Operator's public generation profile
// page. The page renders a "grid card" fragment of the form:
//
//	Grid @ 06:00 Hrs ... Generation: 4,876.45MW Frequency: 50.18Hz | 2.45 %
//
// The markup around the card changes frequently and inconsistently, so
// extraction (package extract) works on raw text with an ordered cascade of
// patterns rather than a DOM parser. Generation values use comma grouping
// ("4,876.45"); the trailing "| <signed-decimal> %" annotation is a load
// trend indicator and may be absent.
//
// News items come from the regulator's (NERC) news listing page. Headline
// anchors usually sit inside <article> blocks with an "entry-title" heading
// class, but the theme has changed more than once, so the extractor carries
// whole-document fallbacks and, as a last resort, a synthetic placeholder
// item so the dashboard never renders an error.
//
// # Status Derivation
//
// The Nigerian grid is nominally 50 Hz. Status is a pure function of the
// scraped frequency:
//
//	[49.5, 50.5]              stable
//	[49.0, 49.5) ∪ (50.5, 51.0]  stressed
//	outside [49.0, 51.0]      critical
//
// When no frequency could be recovered the sample still reports "stable" so
// the dashboard keeps its three-state contract; the pipeline logs a warning
// and counts the occurrence so the evidence-free default stays visible. See
// [StatusForFrequency].
//
// # News Classification
//
// Headlines are tagged by case-insensitive keyword match against the
// normalized title: "warning"/"urgent"/"notice" → alert,
// "update"/"new"/"announce" → update, anything else → info. The alert check
// runs first, so a title matching both classes tags as alert.
//
// # Timestamps
//
// Row observation timestamps are assigned by the datastore at insert time
// (DEFAULT now()), never extracted from the page. News publish dates are
// best-effort: a failed date parse leaves the field null rather than
// dropping the item.
package domain
