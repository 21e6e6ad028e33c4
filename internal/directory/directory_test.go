package directory

import "testing"

func TestHospitalsKnownDisease(t *testing.T) {
	got := Hospitals("Melanoma")
	if len(got) != 1 || got[0].Name != "Onco-Derm Center" {
		t.Fatalf("unexpected hospitals for Melanoma: %+v", got)
	}
}

func TestHospitalsFallback(t *testing.T) {
	got := Hospitals("Eczema")
	if len(got) != 2 || got[0].Name != "Central Dermatology Center" {
		t.Fatalf("expected default hospitals, got %+v", got)
	}
}

func TestHospitalsReturnsCopy(t *testing.T) {
	got := Hospitals("Acne")
	got[0].Name = "changed"
	if Hospitals("Acne")[0].Name != "ClearSkin Institute" {
		t.Fatalf("static table was mutated through returned slice")
	}
}

func TestCitySpecialists(t *testing.T) {
	got := CitySpecialists("  mumbai ")
	if len(got) != 10 {
		t.Fatalf("expected 10 specialists, got %d", len(got))
	}
	first := got[0]
	if first.Name != "Dr. Aarav Mehta" || first.Clinic != "Andheri West Skin Clinic" || first.Experience != "6 yrs" {
		t.Fatalf("unexpected first specialist: %+v", first)
	}
	if first.Phone != "+9190000MU00" {
		t.Fatalf("unexpected phone %q", first.Phone)
	}
	if got[9].Experience != "15 yrs" {
		t.Fatalf("unexpected experience %q", got[9].Experience)
	}
}

func TestCitySpecialistsUnknown(t *testing.T) {
	for _, city := range []string{"", "Atlantis"} {
		if got := CitySpecialists(city); len(got) != 0 {
			t.Errorf("CitySpecialists(%q) = %d entries, want 0", city, len(got))
		}
	}
}

func TestCities(t *testing.T) {
	if got := Cities(); len(got) != 14 || got[0] != "Bangalore" {
		t.Fatalf("unexpected cities %v", got)
	}
}
