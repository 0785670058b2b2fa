// Package profiles holds the fixed catalogue shown on the swipe page.
package profiles

// Profile is a display-only card. The JSON names match what the swipe
// page script reads.
type Profile struct {
	Name  string `json:"name"`
	Image string `json:"img"`
}

var catalogue = [...]Profile{
	{Name: "Sofía, 21", Image: "/static/img/img1.jpg"},
	{Name: "María, 22", Image: "/static/img/img2.jpg"},
	{Name: "Laura, 20", Image: "/static/img/img3.jpg"},
}

// All returns the catalogue in display order. The slice is a fresh copy.
func All() []Profile {
	out := make([]Profile, len(catalogue))
	copy(out, catalogue[:])
	return out
}
