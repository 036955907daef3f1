package demo

// Value pools for synthetic record fields. Picks are hash-derived, never
// random, so a pool edit is the only thing that can change generated data.

var (
	patientNames = []string{
		"James Carter", "Maria Alvarez", "Robert Nguyen", "Linda Okafor",
		"Michael Reyes", "Patricia Kim", "David Thompson", "Barbara Singh",
		"William Torres", "Elizabeth Chen", "Richard Brooks", "Jennifer Patel",
		"Joseph Morgan", "Susan Delgado", "Thomas Webb", "Jessica Romero",
		"Charles Flynn", "Sarah Whitfield", "Daniel Osei", "Karen Maldonado",
		"Matthew Briggs", "Nancy Villanueva", "Anthony Drake", "Lisa Moreau",
	}

	referrerNames = []string{
		"Lakeside Orthopedics", "Summit Spine & Sport", "Harborview Neurology",
		"Eastgate Pain Management", "Cedar Grove Family Practice",
		"Northpoint Chiropractic", "Westbrook Injury Clinic",
		"Magnolia Physical Medicine", "Riverbend Orthopedic Group",
	}

	centerNames = []string{
		"Downtown Imaging Center", "Bayside Open MRI", "Pinecrest Diagnostic",
		"Metro Advanced Imaging", "Crossroads Radiology", "Lakeshore Imaging",
	}

	modalities = []string{"MRI", "CT", "X-Ray", "Ultrasound"}

	bodyParts = []string{
		"Cervical Spine", "Lumbar Spine", "Thoracic Spine", "Brain",
		"Right Knee", "Left Knee", "Right Shoulder", "Left Shoulder",
		"Right Wrist", "Left Ankle", "Pelvis", "Abdomen",
	}

	payerNames = []string{
		"Atlas Mutual", "Keystone Liability", "Pacific Claims Group",
		"Letter of Protection", "Meridian Casualty", "Self-Pay",
	}

	attorneyFirms = []string{
		"Reyes & Calloway LLP", "Hartman Injury Law", "Delgado Trial Group",
		"Whitfield & Associates", "Marsh and Boone", "Okafor Legal PC",
	}

	funderNames = []string{
		"Bridgepoint Medical Funding", "Clearwater Capital",
		"Veritas Lien Funding", "Stonegate Medical Finance",
	}

	radiologistNames = []string{
		"Dr. Elena Marsh", "Dr. Samuel Obi", "Dr. Priya Raman",
		"Dr. Victor Lindqvist", "Dr. Hannah Cole", "Dr. Marcus Webb",
	}

	impressionSummaries = []string{
		"Disc protrusion without cord compression",
		"No acute osseous abnormality",
		"Partial-thickness rotator cuff tear",
		"Mild degenerative changes, age-appropriate",
		"Small joint effusion, no fracture",
		"Findings consistent with soft tissue strain",
	}
)
