// Package sentiment labels review comments as Positive, Neutral or Negative.
//
// The label comes from a lexicon polarity score in [-1, 1] combined with the
// numeric star rating: a clearly toned comment decides on its own, while a
// comment in the neutral band (|p| <= 0.1) defers to the rating.
package sentiment
