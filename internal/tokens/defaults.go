package tokens

// Defaults returns a fresh copy of the stock design-token tree.
func Defaults() map[string]any {
	return map[string]any{
		"spacing": map[string]any{
			"base": "0.25rem",
			"semantic": map[string]any{
				"xs":  "0.25rem",
				"sm":  "0.5rem",
				"md":  "1rem",
				"lg":  "1.5rem",
				"xl":  "2rem",
				"2xl": "3rem",
			},
		},
		"radius": map[string]any{
			"none": "0",
			"sm":   "0.125rem",
			"md":   "0.375rem",
			"lg":   "0.5rem",
			"xl":   "0.75rem",
			"full": "9999px",
		},
		"motion": map[string]any{
			"duration": map[string]any{
				"instant": "0ms",
				"fast":    "150ms",
				"normal":  "250ms",
				"slow":    "400ms",
			},
			"easing": map[string]any{
				"standard":   "cubic-bezier(0.2, 0, 0, 1)",
				"emphasized": "cubic-bezier(0.3, 0, 0, 1)",
				"decelerate": "cubic-bezier(0, 0, 0, 1)",
				"accelerate": "cubic-bezier(0.3, 0, 1, 1)",
			},
			"transition": map[string]any{
				"colors":    "color, background-color, border-color",
				"transform": "transform",
				"opacity":   "opacity",
			},
		},
		"typography": map[string]any{
			"fontFamily": map[string]any{
				"sans": "system-ui, -apple-system, sans-serif",
				"mono": "ui-monospace, SFMono-Regular, monospace",
			},
			"fontSize": map[string]any{
				"xs":  "0.75rem",
				"sm":  "0.875rem",
				"md":  "1rem",
				"lg":  "1.125rem",
				"xl":  "1.25rem",
				"2xl": "1.5rem",
			},
			"fontWeight": map[string]any{
				"normal":   400,
				"medium":   500,
				"semibold": 600,
				"bold":     700,
			},
			"lineHeight": map[string]any{
				"tight":   1.25,
				"normal":  1.5,
				"relaxed": 1.75,
			},
		},
		"focus": map[string]any{
			"ringWidth":  "2px",
			"ringOffset": "2px",
			"ringStyle":  "solid",
		},
		"zIndex": map[string]any{
			"base":     0,
			"dropdown": 1000,
			"sticky":   1100,
			"modal":    1300,
			"popover":  1400,
			"toast":    1500,
			"tooltip":  1600,
		},
		"opacity": map[string]any{
			"disabled": 0.5,
			"hover":    0.8,
			"overlay":  0.6,
		},
		"breakpoints": map[string]any{
			"sm": "640px",
			"md": "768px",
			"lg": "1024px",
			"xl": "1280px",
		},
		"accessibility": map[string]any{
			"minContrastText": DefaultMinContrastText,
			"minContrastUI":   DefaultMinContrastUI,
			"minTouchTarget":  "44px",
		},
	}
}
