package domain

// Resource is a photographer whose calendar is checked for conflicts.
// Identified by the contact address of their hosted calendar account.
// The resource list is configuration, immutable for the process lifetime.
type Resource struct {
	ID        string // email-like calendar address
	Name      string
	IsPrimary bool
}

// ResourceIDs returns the IDs of the given resources in configured order
func ResourceIDs(resources []Resource) []string {
	ids := make([]string, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}
	return ids
}

// PrimaryResource returns the designated primary resource, or the first
// one if none is marked primary. Returns false if the list is empty.
func PrimaryResource(resources []Resource) (Resource, bool) {
	if len(resources) == 0 {
		return Resource{}, false
	}
	for _, r := range resources {
		if r.IsPrimary {
			return r, true
		}
	}
	return resources[0], true
}

// FindResource returns the resource with the given ID
func FindResource(resources []Resource, id string) (Resource, bool) {
	for _, r := range resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}
