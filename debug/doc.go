// Package debug provides environment controlled debug logging.
//
// Each area is enabled by setting the corresponding variable to a true
// value understood by strconv.ParseBool:
//
//	STARC_DEBUG_ENCODE    layout decisions of the encoder
//	STARC_DEBUG_BUILD     BUILD file aggregation and saving
//	STARC_DEBUG_MANIFEST  manifest decoding
package debug
