package recommend

import "strings"

// ProfileInput is what a user typed or uploaded.
type ProfileInput struct {
	Skills     string
	Interests  string
	ResumeText string
}

// Profile is the normalized request profile.
type Profile struct {
	Text       string
	Skills     string
	Interests  string
	FromResume bool
}

// ExtractProfile prefers resume text over the typed fields. When resume text is present the typed
// skills and interests are dropped, so scoring sees two empty strings.
func ExtractProfile(in ProfileInput) Profile {
	if in.ResumeText != "" {
		return Profile{
			Text:       strings.ToLower(in.ResumeText),
			FromResume: true,
		}
	}
	return Profile{
		Text:      strings.ToLower(in.Skills) + " " + strings.ToLower(in.Interests),
		Skills:    in.Skills,
		Interests: in.Interests,
	}
}

// Source names where the profile came from in logs and responses.
func (p Profile) Source() string {
	if p.FromResume {
		return "resume"
	}
	return "manual"
}
