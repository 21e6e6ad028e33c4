package directory

import (
	"fmt"
	"strings"
)

// Hospital is a recommended care center for a diagnosis.
type Hospital struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Contact   string `json:"contact"`
}

// Specialist is a curated dermatologist entry for a city.
type Specialist struct {
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Clinic     string `json:"clinic"`
	Experience string `json:"experience"`
	Address    string `json:"address"`
	Hours      string `json:"hours"`
	Phone      string `json:"phone"`
}

var defaultHospitals = []Hospital{
	{Name: "Central Dermatology Center", Specialty: "Dermatology & Skin Oncology", Contact: "Front desk: (000) 000-0000"},
	{Name: "Riverside Skin Clinic", Specialty: "General Dermatology", Contact: "Appointments: (000) 000-0000"},
}

var hospitalsByDisease = map[string][]Hospital{
	"Acne": {
		{Name: "ClearSkin Institute", Specialty: "Acne & Cosmetic Dermatology", Contact: "Appointments: (000) 000-0000"},
	},
	"Basal Cell Carcinoma": {
		{Name: "Allergy & Derm Care", Specialty: "Basal Cell Carcinoma", Contact: "Appointments: (000) 000-0000"},
	},
	"Melanoma": {
		{Name: "Onco-Derm Center", Specialty: "Skin Oncology", Contact: "Cancer care: (000) 000-0000"},
	},
	"Psoriasis": {
		{Name: "Psoriasis Treatment Hub", Specialty: "Chronic Skin Conditions", Contact: "Front desk: (000) 000-0000"},
	},
	"Rosacea": {
		{Name: "Vascular Derm Clinic", Specialty: "Rosacea & Redness", Contact: "Appointments: (000) 000-0000"},
	},
}

// Hospitals returns the care centers for a diagnosis label, or the general
// dermatology list when the label has no dedicated entry.
func Hospitals(disease string) []Hospital {
	list, ok := hospitalsByDisease[strings.TrimSpace(disease)]
	if !ok {
		list = defaultHospitals
	}
	out := make([]Hospital, len(list))
	copy(out, list)
	return out
}

var specialistNames = []string{
	"Dr. Aarav Mehta",
	"Dr. Kavya Rao",
	"Dr. Rohan Iyer",
	"Dr. Sneha Kulkarni",
	"Dr. Vivek Nair",
	"Dr. Nisha Bhat",
	"Dr. Priya Menon",
	"Dr. Suresh Rao",
	"Dr. Rahul Jain",
	"Dr. Aisha Khan",
}

// ten neighbourhoods per city, one specialist each
var cityAreas = []struct {
	city  string
	areas []string
}{
	{"Bangalore", []string{"Indiranagar", "Koramangala", "Whitefield", "Jayanagar", "HSR Layout", "MG Road", "BTM Layout", "Hebbal", "JP Nagar", "Yelahanka"}},
	{"Mumbai", []string{"Andheri West", "Bandra", "Juhu", "Powai", "Thane", "Dadar", "Borivali", "Chembur", "Malad", "Colaba"}},
	{"Delhi", []string{"South Delhi", "Dwarka", "Rohini", "Saket", "Lajpat Nagar", "Karol Bagh", "Noida", "Gurgaon", "Pitampura", "Mayur Vihar"}},
	{"Hyderabad", []string{"HITEC City", "Banjara Hills", "Jubilee Hills", "Gachibowli", "Madhapur", "Kondapur", "Begumpet", "Secunderabad", "Kukatpally", "LB Nagar"}},
	{"Chennai", []string{"Adyar", "T Nagar", "Velachery", "Anna Nagar", "OMR", "Porur", "Tambaram", "Nungambakkam", "Mylapore", "Guindy"}},
	{"Kolkata", []string{"Salt Lake", "Park Street", "New Town", "Garia", "Howrah", "Behala", "Dum Dum", "Jadavpur", "Ballygunge", "Kasba"}},
	{"Pune", []string{"Koregaon Park", "Hinjewadi", "Baner", "Aundh", "Kothrud", "Viman Nagar", "Hadapsar", "Wakad", "Shivajinagar", "Kharadi"}},
	{"Ahmedabad", []string{"SG Highway", "Navrangpura", "Prahladnagar", "Bodakdev", "Satellite", "Paldi", "Maninagar", "Ghatlodia", "Vastrapur", "Chandkheda"}},
	{"Jaipur", []string{"C Scheme", "Malviya Nagar", "Vaishali Nagar", "Tonk Road", "Jagatpura", "Mansarovar", "Bani Park", "MI Road", "Ajmer Road", "Raja Park"}},
	{"Lucknow", []string{"Gomti Nagar", "Hazratganj", "Indira Nagar", "Aliganj", "Rajajipuram", "Mahanagar", "Vikas Nagar", "Chowk", "Alambagh", "Jankipuram"}},
	{"Chandigarh", []string{"Sector 17", "Sector 35", "Sector 22", "Sector 44", "Sector 8", "Sector 15", "Sector 11", "Sector 9", "Sector 21", "Sector 10"}},
	{"Indore", []string{"Vijay Nagar", "Palasia", "Bhawarkua", "Rajwada", "New Palasia", "Saket", "Rau", "Bengali Square", "Choithram", "Annapurna"}},
	{"Bhopal", []string{"Arera Colony", "MP Nagar", "Kolar", "Bawadiya Kalan", "Habibganj", "TT Nagar", "Piplani", "Ashoka Garden", "Kotra", "Shahpura"}},
	{"Surat", []string{"Adajan", "Vesu", "City Light", "Piplod", "Varachha", "Katargam", "Udhna", "Rander", "Nanpura", "Athwa"}},
}

var specialistsByCity = buildSpecialists()

func buildSpecialists() map[string][]Specialist {
	data := make(map[string][]Specialist, len(cityAreas))
	for _, c := range cityAreas {
		list := make([]Specialist, 0, len(c.areas))
		for i, area := range c.areas {
			list = append(list, Specialist{
				Name:       specialistNames[i],
				Specialty:  "Dermatologist",
				Clinic:     area + " Skin Clinic",
				Experience: fmt.Sprintf("%d yrs", 6+i),
				Address:    area,
				Hours:      "Mon-Sat 10am-6pm",
				Phone:      fmt.Sprintf("+9190000%s%02d", strings.ToUpper(c.city[:2]), i),
			})
		}
		data[strings.ToLower(c.city)] = list
	}
	return data
}

// CitySpecialists looks up the curated list for a city (case-insensitive).
// Unknown or blank cities yield an empty list.
func CitySpecialists(city string) []Specialist {
	list := specialistsByCity[strings.ToLower(strings.TrimSpace(city))]
	out := make([]Specialist, len(list))
	copy(out, list)
	return out
}

// Cities lists the cities with curated specialists, in display order.
func Cities() []string {
	out := make([]string, 0, len(cityAreas))
	for _, c := range cityAreas {
		out = append(out, c.city)
	}
	return out
}
