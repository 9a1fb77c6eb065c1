package school

import "github.com/mesh-intelligence/shapes/pkg/types"

// SampleEducators returns the demo teachers and directors.
func SampleEducators() []types.Record {
	return []types.Record{
		{"firstName": "Sarah", "lastName": "Wilson", "fullTimeEmployee": true, "location": "Boston"},
		{"firstName": "Michael", "lastName": "Johnson", "fullTimeEmployee": false, "location": "Seattle", "yearsOfExperience": 5},
		{"firstName": "John", "lastName": "Doe", "fullTimeEmployee": false, "location": "London", "contract": false},
		{"firstName": "John", "lastName": "Doe", "fullTimeEmployee": true, "location": "London", "numberOfReports": 17},
		{
			"firstName": "Jane", "lastName": "Smith", "fullTimeEmployee": true, "location": "New York",
			"yearsOfExperience": 20, "numberOfReports": 25,
			"department": "Computer Science", "hasAdvancedDegree": true,
		},
	}
}

// SampleStudents returns the demo student records.
func SampleStudents() []types.Record {
	return []types.Record{
		{"firstName": "John", "lastName": "Doe", "age": 20, "location": "New York"},
		{"firstName": "Jane", "lastName": "Smith", "age": 22, "location": "California"},
	}
}

// SampleSubjectTeachers returns teachers with per-subject experience.
func SampleSubjectTeachers() []types.Record {
	return []types.Record{
		{"firstName": "Guillaume", "lastName": "Salva", "experienceTeachingC": 10},
		{"firstName": "Sarah", "lastName": "Johnson", "experienceTeachingReact": 5},
		{"firstName": "Michael", "lastName": "Chen", "experienceTeachingJava": 8},
		{"firstName": "Emily", "lastName": "Rodriguez", "experienceTeachingC": 6, "experienceTeachingReact": 4, "experienceTeachingJava": 7},
	}
}
