package reminder

import "fmt"

// Seed returns the example records used when no valid collection is stored.
func Seed() []Reminder {
	return []Reminder{
		{
			ID:         "8f1c7a52-3d5e-4b7a-9a41-6a2f0c1d9e01",
			PatientID:  "0123456",
			Name:       "Taro Tanaka",
			Category:   CategoryFirst,
			CreatedAt:  "2025-11-08",
			TargetDate: "2025-11-15",
		},
		{
			ID:         "2b7d9e14-6c3a-4f58-8e20-1d4b5a7c3f02",
			PatientID:  "9876543",
			Name:       "Hanako Sato",
			Category:   CategoryLong,
			CreatedAt:  "2025-10-17",
			TargetDate: "2025-11-17",
			IsDone:     true,
			Remarks:    "Reports strong drowsiness. Check in on it.",
		},
		{
			ID:         "c4e6a830-9f1b-4d27-b5c3-7e8f2a9d6b03",
			PatientID:  "0012345",
			Name:       "Ichiro Suzuki",
			Category:   CategoryLong,
			CreatedAt:  "2024-11-15",
			TargetDate: "2024-11-18",
		},
	}
}

// ValidateAll checks every reminder and id uniqueness across the collection.
func ValidateAll(rs []Reminder) error {
	seen := make(map[string]struct{}, len(rs))
	for i, r := range rs {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("reminder %d: %w", i, err)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("reminder %d: duplicate id %s", i, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
