package taxonomy

// Default returns the built-in mood taxonomy covering common scene elements.
// Callers needing additional categories or keys should load a custom taxonomy
// with Load instead of editing this table.
func Default() *Taxonomy {
	return New(map[string]map[string][]string{
		Location: {
			"beach":      {"peaceful", "serene", "waves", "tropical"},
			"mountain":   {"epic", "majestic", "vast", "triumphant"},
			"city":       {"urban", "busy", "rhythmic", "modern"},
			"forest":     {"mysterious", "organic", "natural", "mystical"},
			"desert":     {"minimal", "expansive", "empty", "spiritual"},
			"space":      {"atmospheric", "ethereal", "floating", "cosmic"},
			"underwater": {"floating", "mysterious", "fluid", "deep"},
			"castle":     {"royal", "epic", "medieval", "grand"},
			"ruins":      {"ancient", "mysterious", "forgotten", "ethereal"},
		},
		Time: {
			"night":    {"dark", "mysterious", "quiet", "nocturnal"},
			"dawn":     {"hopeful", "beginning", "light", "awakening"},
			"dusk":     {"melancholic", "ending", "transition", "fading"},
			"day":      {"bright", "active", "energetic", "vibrant"},
			"twilight": {"magical", "transitional", "ethereal", "mysterious"},
		},
		Weather: {
			"rain":  {"melancholic", "peaceful", "gentle", "pitter-patter"},
			"storm": {"dramatic", "intense", "powerful", "thunderous"},
			"snow":  {"quiet", "soft", "delicate", "crystalline"},
			"sunny": {"bright", "warm", "positive", "radiant"},
			"foggy": {"mysterious", "ethereal", "muted", "hazy"},
			"windy": {"dynamic", "sweeping", "flowing", "whistling"},
		},
		Emotion: {
			"happy":      {"joyful", "uplifting", "bright", "celebratory"},
			"sad":        {"melancholic", "emotional", "deep", "sorrowful"},
			"angry":      {"intense", "dramatic", "powerful", "aggressive"},
			"peaceful":   {"calm", "serene", "gentle", "tranquil"},
			"tense":      {"suspense", "dramatic", "dark", "anxious"},
			"nostalgic":  {"emotional", "bittersweet", "remembrance", "longing"},
			"afraid":     {"tense", "dark", "scary", "frightening"},
			"triumphant": {"victorious", "uplifting", "powerful", "grand"},
			"lonely":     {"melancholic", "isolated", "empty", "solitary"},
		},
		Action: {
			"running":   {"fast", "chase", "intense", "urgent"},
			"fighting":  {"action", "dramatic", "battle", "aggressive"},
			"kissing":   {"romantic", "emotional", "intimate", "tender"},
			"crying":    {"sad", "emotional", "deep", "heartbreaking"},
			"laughing":  {"happy", "light", "joyful", "playful"},
			"waiting":   {"suspense", "tension", "quiet", "anticipation"},
			"searching": {"mysterious", "quest", "seeking", "determined"},
			"dancing":   {"rhythmic", "joyful", "flowing", "energetic"},
			"sleeping":  {"peaceful", "quiet", "dreamy", "gentle"},
		},
		Genre: {
			"romance": {"romantic", "emotional", "intimate", "loving"},
			"horror":  {"scary", "tense", "dark", "suspenseful"},
			"action":  {"intense", "dramatic", "powerful", "energetic"},
			"drama":   {"emotional", "deep", "serious", "powerful"},
			"fantasy": {"magical", "epic", "mystical", "otherworldly"},
			"scifi":   {"futuristic", "electronic", "otherworldly", "cosmic"},
		},
	})
}
