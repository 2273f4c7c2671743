// Package domain models the NHATS asteroid-mission candidates and Ambee pollen
// readings printed by the sky and pollen commands.
//
// # NHATS Data
//
// Mission candidates come from the JPL Small-Body Database NHATS API,
// https://ssd-api.jpl.nasa.gov/nhats.api. The sky command always queries with
// fixed constraints (dv=6 km/s, dur=360 days, stay=8 days, launch 2020-2045,
// H<=26, OCC<=7). Each element of the "data" array is a flat JSON object:
//
//	des         designation, e.g. "2000 SG344"
//	obs_start   start of the next optical observing window, "YYYY-MM"
//	obs_end     end of that window
//	obs_mag     peak V magnitude during the window
//	min_dv      {"dv": "<km/s>", "dur": "<days>"} minimum delta-v trajectory
//	max_size    upper bound of the estimated diameter in meters
//	n_via_traj  number of viable trajectories
//
// Numeric fields are usually sent as strings ("4.643") and any of them may be
// missing or null. They are coerced by [ParseNumber]; values that do not parse
// are absent, never errors.
//
// Classification:
//
//	Brightness (magnitude): <15 bright | >20 dim | otherwise observed
//	Velocity (min delta-v): >10 fast  | <1 slow  | otherwise nothing
//
// Lower magnitudes are brighter, so the boundaries 15 and 20 fall into the
// default "observed" bucket. See [Classify].
//
// # Pollen Data
//
// Readings come from the Ambee latest-by-coordinates endpoint. The first
// element of "data" carries three mappings:
//
//	Species  {"Grass": {"Grass / Poaceae": 27}, "Others": 2, "Tree": {...}}
//	Risk     {"grass_pollen": "Low", "tree_pollen": "Moderate", ...}
//	Count    {"grass_pollen": 27, "tree_pollen": 47, ...}
//
// Species values are either an allergen->count sub-mapping or a bare count.
// Risk and Count are keyed by the lowercase category plus "_pollen"; nothing in
// the feed ties the two shapes together, so a category without a matching risk
// key reports "N/A". Species are decoded in provider key order, which also
// breaks ties between equal counts (see [ParsePollenResponse]).
package domain
