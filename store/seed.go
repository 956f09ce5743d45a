package store

import "cybertech/models"

// SeedCategories is the fixed storefront category list.
func SeedCategories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Penetration Testing", Icon: "swords"},
		{ID: "2", Name: "Malware Analysis", Icon: "bug"},
		{ID: "3", Name: "Defensive Security", Icon: "shield"},
		{ID: "4", Name: "Cryptography", Icon: "key"},
		{ID: "5", Name: "Network Security", Icon: "network"},
	}
}

// SeedCourses is the initial catalog, installed on first startup when no
// courses have ever been persisted.
func SeedCourses() []models.Course {
	return []models.Course{
		{
			ID:          "1",
			Title:       "Penetration Testing Fundamentals",
			Description: "Learn the basics of penetration testing and how to discover system vulnerabilities",
			Image:       "https://images.unsplash.com/photo-1550751827-4bd374c3f58b",
			Instructor:  "Ahmed Mohamed",
			Duration:    "8 Hours",
			Level:       models.LevelBeginner,
			Category:    "Penetration Testing",
			Price:       49.99,
			Content: []models.Lesson{
				{
					ID:          "1-1",
					Title:       "Introduction to Penetration Testing",
					Duration:    "45 Minutes",
					VideoURL:    "https://www.youtube.com/embed/kmJlnUfMd7I?si=fguH9RDUcWf20PSt",
					Description: "Learn the basic concepts of penetration testing and its importance in cybersecurity",
				},
				{
					ID:          "1-2",
					Title:       "Penetration Testing Tools",
					Duration:    "60 Minutes",
					VideoURL:    "https://www.youtube.com/embed/kUovJpWqEMk?si=sp9ueb-oEAbHM0xc",
					Description: "Explore the essential tools used in penetration testing",
				},
				{
					ID:          "1-3",
					Title:       "Penetration Testing Methodology",
					Duration:    "55 Minutes",
					VideoURL:    "https://www.youtube.com/embed/X3DVaMnl5n8?si=QvfstU6T6gx9zCZw",
					Description: "Learn the methodical steps for conducting professional penetration testing",
				},
			},
		},
		{
			ID:          "2",
			Title:       "Advanced Malware Analysis",
			Description: "Advanced course in analyzing and understanding malware and methods of combating it",
			Image:       "https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5",
			Instructor:  "Sarah Ahmed",
			Duration:    "12 Hours",
			Level:       models.LevelAdvanced,
			Category:    "Malware Analysis",
			Price:       79.99,
			Content: []models.Lesson{
				{
					ID:          "2-1",
					Title:       "Introduction to Malware Analysis",
					Duration:    "50 Minutes",
					VideoURL:    "https://www.youtube.com/embed/kmJlnUfMd7I?si=fguH9RDUcWf20PSt",
					Description: "Learn the basics of malware analysis and its importance",
				},
				{
					ID:          "2-2",
					Title:       "Advanced Analysis Tools",
					Duration:    "75 Minutes",
					VideoURL:    "https://www.youtube.com/embed/X3DVaMnl5n8?si=QvfstU6T6gx9zCZw",
					Description: "Explore advanced tools used in malware analysis",
				},
			},
		},
		{
			ID:          "3",
			Title:       "Network Security Basics",
			Description: "Learn the basics of network security and how to protect infrastructure",
			Image:       "https://images.unsplash.com/photo-1558494949-ef010cbdcc31",
			Instructor:  "Mohamed Ali",
			Duration:    "10 Hours",
			Level:       models.LevelBeginner,
			Category:    "Network Security",
			Price:       59.99,
			Content: []models.Lesson{
				{
					ID:          "3-1",
					Title:       "Network Security Fundamentals",
					Duration:    "60 Minutes",
					VideoURL:    "https://www.youtube.com/embed/kmJlnUfMd7I?si=fguH9RDUcWf20PSt",
					Description: "Learn the basic concepts of network security",
				},
				{
					ID:          "3-2",
					Title:       "Security Protocols",
					Duration:    "55 Minutes",
					VideoURL:    "https://www.youtube.com/embed/X3DVaMnl5n8?si=QvfstU6T6gx9zCZw",
					Description: "Study different security protocols and how to implement them",
				},
			},
		},
	}
}
