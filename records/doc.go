// Package records loads line-delimited JSON files into sequences of
// dynamically shaped records and counts values found at dotted field paths.
//
//	seq, err := records.Load("coffee-tweets.json")
//	if err != nil {
//		return err
//	}
//	states, err := records.Count(seq, "place.full_name",
//		records.WithTransform(records.LastToken(",")),
//		records.WithOrder(records.CountDescending))
//
// Records are Values of kind Mapping. A Value is a tagged variant over the
// JSON types, so records in one file need not share a structure.
package records
