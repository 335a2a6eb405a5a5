package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID           string  // Unique identifier
	Label        string  // Display name
	Format       string  // Printf format (e.g., "%.2f")
	Min          float64 // Minimum value (for bars)
	Max          float64 // Maximum value (for bars)
	IsBar        bool    // True to render as progress bar
	ShowWhenZero bool    // Show even when value is zero
	Group        string  // Logical grouping
}

// VitalsFieldDescriptors returns metadata for Vitals fields.
// Field IDs must match cases in GetVitalsValue().
func VitalsFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "hunger", Label: "Hunger", Format: "%.2f", Min: 0, Max: 5, IsBar: true, ShowWhenZero: true, Group: "needs"},
		{ID: "energy", Label: "Energy", Format: "%.2f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "needs"},
		{ID: "oxygen", Label: "Oxygen", Format: "%.2f", Min: 0, Max: 1, IsBar: true, Group: "needs"},
		{ID: "health", Label: "Health", Format: "%.0f", Min: 0, Max: 100, IsBar: true, ShowWhenZero: true, Group: "life"},
		{ID: "age", Label: "Age", Format: "%.1f", Group: "life"},
		{ID: "repro_drive", Label: "Drive", Format: "%.2f", Min: 0, Max: 1, IsBar: true, Group: "life"},
		{ID: "repro_cooldown", Label: "Cooldown", Format: "%.0f", Group: "life"},
	}
}

// PersonalityFieldDescriptors returns metadata for Personality fields.
func PersonalityFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "boldness", Label: "Boldness", Format: "%.2f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "personality"},
		{ID: "activity", Label: "Activity", Format: "%.2f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "personality"},
		{ID: "curiosity", Label: "Curiosity", Format: "%.2f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "personality"},
		{ID: "socialness", Label: "Social", Format: "%.2f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "personality"},
	}
}

// GetVitalsValue extracts a vitals field value by ID.
func GetVitalsValue(v *Vitals, fieldID string) float64 {
	switch fieldID {
	case "hunger":
		return v.Hunger
	case "energy":
		return v.Energy
	case "oxygen":
		return v.Oxygen
	case "health":
		return v.Health
	case "age":
		return v.Age
	case "repro_drive":
		return v.ReproDrive
	case "repro_cooldown":
		return v.ReproCooldown
	default:
		return 0
	}
}

// GetPersonalityValue extracts a personality trait by ID.
func GetPersonalityValue(p *Personality, fieldID string) float64 {
	switch fieldID {
	case "boldness":
		return p.Boldness
	case "activity":
		return p.Activity
	case "curiosity":
		return p.Curiosity
	case "socialness":
		return p.Socialness
	default:
		return 0
	}
}
