package catalog

import "github.com/srazzak/tutorsite/internal/contenttree"

const (
	accentOrange = "#f7991B"
	accentPurple = "#8457A4"
)

// Default returns the site's catalog.
func Default() *Catalog {
	c, err := New(
		oLevelP1(),
		oLevelP2(),
		aLevelAS(),
		aLevelA2(),
		intermediateXI(),
		intermediateXII(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func oLevelP1() *Course {
	topic := func(n int, title, file string) Topic {
		return Topic{Number: n, Title: title, File: file, Discriminator: "Unit1"}
	}
	return &Course{
		Level:    "olevel",
		Paper:    "p1",
		Badge:    "O Level Paper 1",
		Title:    "Master O Level Paper 1",
		Subtitle: "Theory & Concepts",
		Tagline:  "Build strong theoretical foundations with comprehensive coverage of all Paper 1 topics. Focus on conceptual understanding and analytical thinking.",
		Accent:   accentOrange,
		Intro: `Notes are organised by chapter. Open a chapter to pick a topic, then read it in the viewer.

- Data representation and number systems
- Compression, sound and images
- Storage units and memory calculations`,
		Tree:             contenttree.KindOLevelP1,
		MaterialsHeading: "Chapter Notes & Study Materials",
		Units: []Unit{{
			Title:    "Chapter One",
			Subtitle: "Data Representation & Number Systems",
			Topics: []Topic{
				topic(1, "Binary Represents Data", "Topic1_BinaryRepresentsData.docx"),
				topic(2, "Addition Of Binary", "Topic2_AdditionOfBinary.docx"),
				topic(3, "Two's Complement", "Topic3_Two'sComplement.docx"),
				topic(4, "Logical Binary Shift", "Topic4_LogicalBinaryShift.docx"),
				topic(5, "Uses Of Hexadecimal", "Topic5_UsesOfHexa.docx"),
				topic(6, "Data Compression", "Topic6_DataCompression.docx"),
				topic(7, "Lossy & Lossless File Compression", "Topic7_Lossy_LosslessFileCompression.docx"),
				topic(8, "Sound", "Topic8_Sound.docx"),
				topic(9, "ASCII Code & Unicode", "Topic9_ASCII_Code_Unicode.docx"),
				topic(10, "Images", "Topic10_Images.docx"),
				topic(11, "Measurement of Data Storage", "Topic11_MeasurementofDatastorage.docx"),
				topic(12, "Memory Calculation", "Topic12_MemoryCalculation.docx"),
			},
		}},
	}
}

func oLevelP2() *Course {
	notes := func(n int, title, file string) Topic {
		return Topic{Number: n, Title: title, File: file, Discriminator: "notes"}
	}
	important := func(n int, title, file string) Topic {
		return Topic{Number: n, Title: title, File: file, Discriminator: "important_topics"}
	}
	return &Course{
		Level:    "olevel",
		Paper:    "p2",
		Badge:    "O Level Paper 2",
		Title:    "Excel in O Level Paper 2",
		Subtitle: "Practical Applications",
		Tagline:  "Master practical problem-solving with hands-on programming experience. Focus on algorithm design, coding, and computational thinking.",
		Accent:   accentOrange,
		Intro: "Unit notes cover the syllabus in order. The **important topics** collection " +
			"targets the questions that come up most in Paper 2.\n\n" +
			"```\nFOR i <- 1 TO 10\n    OUTPUT i\nNEXT i\n```",
		Tree:             contenttree.KindOLevelP2,
		MaterialsHeading: "Unit Notes & Study Materials",
		Units: []Unit{
			{
				Title:    "Unit 7",
				Subtitle: "Algorithm Design & Problem Solving",
				Topics: []Topic{
					notes(1, "Algorithm Design & Problem Solving", "Unit7_Part1_Algorithm_design_and_problem_solving.docx"),
					notes(2, "Pseudocode (Max, Min, Bubble Sort, Linear Search)", "Unit7_Part2_Pseudocode_Max,Min,Bubblesort,Linearsearch.docx"),
				},
			},
			{
				Title:    "Unit 8",
				Subtitle: "Programming",
				Topics: []Topic{
					notes(1, "Programming Concepts", "8.1 PROGRAMMING CONCEPTS.docx"),
					notes(2, "Programming", "Unit8_Part1_Programming.docx"),
					notes(3, "String & File Handling", "Unit8_Part2_String_AND_FileHandling.docx"),
					notes(4, "Library Routines", "Unit8_Part3_LibraryRoutines.docx"),
					notes(5, "Arrays", "Unit8_Part4_Arrays.docx"),
				},
			},
		},
		Extras: &Unit{
			Title:    "Important Topics",
			Subtitle: "Exam-focused practice",
			Topics: []Topic{
				important(1, "Algorithm & Array", "Algorithm_array.docx"),
				important(2, "Boolean Logic", "Boolean_Logic.docx"),
				important(3, "Database", "Database.docx"),
				important(4, "Error Finding", "Error_finding.docx"),
				important(5, "File Handling", "File_Handling.docx"),
				important(6, "Program Development Life Cycle", "Program_development_Life_Cycle.docx"),
				important(7, "Scenario Based", "Scenario_Based.docx"),
				important(8, "String Handlers", "String_Handlers.docx"),
				important(9, "Structure Diagram", "Structure_diagram.docx"),
				important(10, "Test Data", "Test_Data.docx"),
				important(11, "Trace Table", "Trace_Table.docx"),
				important(12, "Validation & Verification", "Validation_verificaiton.docx"),
			},
		},
	}
}

func aLevelAS() *Course {
	return &Course{
		Level:      "alevel",
		Paper:      "as",
		Badge:      "A Level AS",
		Title:      "A Level AS Foundation",
		Subtitle:   "Advanced Studies Start Here",
		Tagline:    "Build a solid foundation for advanced studies with comprehensive AS level preparation. Master core concepts that bridge O Level to full A Level mastery.",
		Accent:     accentPurple,
		ComingSoon: true,
	}
}

func aLevelA2() *Course {
	return &Course{
		Level:            "alevel",
		Paper:            "a2",
		Badge:            "A Level A2",
		Title:            "A Level A2 Mastery",
		Subtitle:         "Advanced Level Excellence",
		Tagline:          "Complete your A Level journey with advanced concepts, complex projects, and university-level preparation. Achieve top grades with expert guidance.",
		Accent:           accentPurple,
		MaterialsHeading: "A2 Level Advanced Materials",
		PDFs: []PDFCard{
			{Title: "Advanced Programming", Description: "OOP, inheritance & polymorphism", Pages: "48 pages", File: "a2/advanced-programming.pdf"},
			{Title: "System Analysis & Design", Description: "Complete SDLC methodologies", Pages: "55 pages", File: "a2/system-analysis-design.pdf"},
			{Title: "Artificial Intelligence", Description: "AI algorithms and applications", Pages: "40 pages", File: "a2/artificial-intelligence.pdf"},
			{Title: "Computer Architecture", Description: "CPU design & assembly language", Pages: "45 pages", File: "a2/computer-architecture.pdf"},
			{Title: "Network Security", Description: "Cryptography and secure protocols", Pages: "38 pages", File: "a2/network-security.pdf"},
			{Title: "A2 Exam Preparation", Description: "Past papers and examination tips", Pages: "75 pages", File: "a2/exam-preparation.pdf"},
		},
	}
}

func intermediateXI() *Course {
	return &Course{
		Level:            "intermediate",
		Paper:            "xi",
		Badge:            "Intermediate Class XI",
		Title:            "Class XI Foundation",
		Subtitle:         "First Year Excellence",
		Tagline:          "Start your intermediate journey with strong foundations in mathematics, computer science, and essential subjects for higher education success.",
		Accent:           accentOrange,
		Tree:             contenttree.KindIntermediate,
		MaterialsHeading: "Class XI Study Materials",
		PDFs: []PDFCard{
			{Title: "Mathematics XI", Description: "Algebra, trigonometry & calculus", Pages: "60 pages", File: "xi/mathematics.pdf"},
			{Title: "Computer Science XI", Description: "Programming basics & theory", Pages: "45 pages", File: "xi/computer-science.pdf"},
			{Title: "Physics XI", Description: "Mechanics and thermal physics", Pages: "55 pages", File: "xi/physics.pdf"},
			{Title: "Chemistry XI", Description: "Atomic structure & bonding", Pages: "50 pages", File: "xi/chemistry.pdf"},
			{Title: "English XI", Description: "Literature and composition", Pages: "40 pages", File: "xi/english.pdf"},
			{Title: "Combined Practice Tests", Description: "Mock exams and assessments", Pages: "35 pages", File: "xi/practice-tests.pdf"},
		},
	}
}

func intermediateXII() *Course {
	return &Course{
		Level:      "intermediate",
		Paper:      "xii",
		Badge:      "Intermediate Class XII",
		Title:      "Class XII Completion",
		Subtitle:   "Final Year Success",
		Tagline:    "Complete your intermediate education with excellence. Master advanced concepts, ace board exams, and prepare for university admission and career success.",
		Accent:     accentOrange,
		Tree:       contenttree.KindIntermediate,
		ComingSoon: true,
	}
}
