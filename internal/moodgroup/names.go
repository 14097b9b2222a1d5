package moodgroup

// moodName names a group from its centroid using a 2x2 energy/valence
// quadrant scheme with an acousticness modifier.
//
// Quadrants:
//   - High Energy + High Valence = "Upbeat & Bright"
//   - High Energy + Low Valence  = "Intense & Dark"
//   - Low Energy  + High Valence = "Calm & Hopeful"
//   - Low Energy  + Low Valence  = "Reflective & Melancholy"
//
// Acousticness above 0.6 appends "(Acoustic)".
func moodName(centroid map[string]float64) string {
	energy := centroid["energy"]
	valence := centroid["valence"]
	acousticness := centroid["acousticness"]

	highEnergy := energy > 0.6
	highValence := valence > 0.5

	var baseName string
	switch {
	case highEnergy && highValence:
		baseName = "Upbeat & Bright"
	case highEnergy && !highValence:
		baseName = "Intense & Dark"
	case !highEnergy && highValence:
		baseName = "Calm & Hopeful"
	default:
		baseName = "Reflective & Melancholy"
	}

	if acousticness > 0.6 {
		return baseName + " (Acoustic)"
	}
	return baseName
}
