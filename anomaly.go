// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Anomalies are non-fatal structural oddities recorded (by Open for the
// map_list, by ClassData for class_data_item methods) rather than
// rejected, because the DEX spec either explicitly
// tolerates them (out-of-order map_list offsets, spec §4.2) or because
// real-world tooling produces them without them affecting correctness.
// They never change the outcome of Open or ClassData; they are purely
// informational, surfaced through File.Anomalies and the logger.
const (
	// AnoMapOutOfOrder is reported when a map_item's offset is smaller
	// than the previous map_item's offset. The recorded entry starts
	// with this text, followed by the entry's index and offsets.
	AnoMapOutOfOrder = "map_item offset is out of order"

	// AnoMapMissingMandatory is reported when the map_list omits one of
	// the mandatory item kinds (header_item, string_id_item,
	// type_id_item, map_list). The recorded entry starts with this
	// text, followed by the missing item kind's name.
	AnoMapMissingMandatory = "map_list is missing a mandatory entry"

	// AnoNativeMethodHasCode is reported when a class_data_item method
	// marked ACC_NATIVE or ACC_ABSTRACT carries a non-zero code_off,
	// which the DEX spec says must be null for such methods.
	AnoNativeMethodHasCode = "native or abstract method has non-zero code_off"
)

// addAnomaly records a non-fatal condition and logs it at warn level.
func (d *File) addAnomaly(msg string) {
	d.Anomalies = append(d.Anomalies, msg)
	if d.logger != nil {
		d.logger.Warnf("%s", msg)
	}
}
