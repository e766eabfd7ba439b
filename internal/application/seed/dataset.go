// Package seed loads the bundled Kenyan reference dataset into the lexicon
// stores.
package seed

import "github.com/afyabot/afyabot/internal/domain/lexicon"

// KenyaSymptoms is the seeded symptom lexicon.
func KenyaSymptoms() []lexicon.Symptom {
	return []lexicon.Symptom{
		{Name: "fever", AlternativeNames: "high temperature, hot body, sweating, chills"},
		{Name: "headache", AlternativeNames: "head pain, migraine, throbbing head"},
		{Name: "cough", AlternativeNames: "coughing, dry cough, wet cough, chest cough"},
		{Name: "diarrhea", AlternativeNames: "diarrhoea, loose stools, running stomach, watery stool"},
		{Name: "vomiting", AlternativeNames: "throwing up, nausea, sick stomach"},
		{Name: "fatigue", AlternativeNames: "tiredness, weakness, exhaustion, lethargy"},
		{Name: "chest pain", AlternativeNames: "chest discomfort, heart pain, tight chest"},
		{Name: "difficulty breathing", AlternativeNames: "shortness of breath, breathlessness, can't breathe"},
	}
}

// KenyaEmergencyKeywords is the seeded emergency keyword table.
func KenyaEmergencyKeywords() []lexicon.EmergencyKeyword {
	return []lexicon.EmergencyKeyword{
		{
			Keyword:  "unconscious",
			Severity: lexicon.SeverityCritical,
			ResponseMessage: "🚨 This is a LIFE-THREATENING EMERGENCY. The person is unconscious. " +
				"Call 911 or 112 immediately. While waiting: Check if they are breathing, " +
				"place them in recovery position if breathing, start CPR if not breathing.",
		},
		{
			Keyword:  "not breathing",
			Severity: lexicon.SeverityCritical,
			ResponseMessage: "🚨 EMERGENCY! Person is not breathing. Call 911/112 NOW. " +
				"Start CPR: Push hard and fast in center of chest (100-120 compressions per minute). " +
				"Continue until help arrives.",
		},
		{
			Keyword:  "severe bleeding",
			Severity: lexicon.SeverityCritical,
			ResponseMessage: "🚨 SEVERE BLEEDING EMERGENCY. Call 911/112 immediately. " +
				"Apply firm pressure to wound with clean cloth. Do not remove cloth if blood " +
				"soaks through - add more on top. Keep person warm and lying down.",
		},
		{
			Keyword:  "snake bite",
			Severity: lexicon.SeverityCritical,
			ResponseMessage: "🚨 SNAKE BITE EMERGENCY. Call 911/112 NOW. Keep the person calm and still. " +
				"Remove tight clothing/jewelry. Do NOT cut the wound or suck out venom. " +
				"Try to remember snake color/pattern for treatment.",
		},
		{
			Keyword:  "choking",
			Severity: lexicon.SeverityCritical,
			ResponseMessage: "🚨 CHOKING EMERGENCY. If person cannot breathe or speak: Stand behind them, " +
				"wrap arms around waist, make fist above navel, thrust inward and upward " +
				"(Heimlich maneuver). Call 911/112 if unsuccessful.",
		},
		{
			Keyword:  "heart attack",
			Severity: lexicon.SeverityCritical,
			ResponseMessage: "🚨 POSSIBLE HEART ATTACK. Call 911/112 immediately. Have person sit and rest. " +
				"If conscious, give aspirin (if available and not allergic). Loosen tight clothing. " +
				"Be ready to start CPR.",
		},
	}
}

// KenyaConditions is the seeded condition corpus with first-aid procedures.
// Chikungunya deliberately carries no first aid, matching the source data;
// the matcher excludes it from results.
func KenyaConditions() []lexicon.Condition {
	return []lexicon.Condition{
		{
			Name:           "Malaria",
			Description:    "Common mosquito-borne disease in Kenya",
			CommonSymptoms: "fever, chills, headache, sweating, fatigue",
			FirstAid: []lexicon.FirstAid{{
				Title: "Malaria First Aid",
				Steps: "1. Rest in a cool, quiet place\n2. Take paracetamol for fever (if available)\n" +
					"3. Drink plenty of clean water\n4. Use mosquito net to prevent further bites\n" +
					"5. Go to the nearest health facility for a malaria test",
				WarningNotes: "Do not take anti-malarial drugs without testing. " +
					"Malaria tests are free at public health facilities.",
				WhenToSeekHelp: "Seek immediate help if: fever persists >24 hours, " +
					"person is unconscious, or if it's a child under 5",
			}},
		},
		{
			Name:           "Pneumonia",
			Description:    "Lung infection common during rainy season",
			CommonSymptoms: "cough, difficulty breathing, chest pain, fever",
			FirstAid: []lexicon.FirstAid{{
				Title: "Pneumonia First Aid",
				Steps: "1. Keep the person sitting upright to help breathing\n2. Loosen tight clothing\n" +
					"3. Give plenty of fluids\n4. Use paracetamol for fever\n5. Seek medical help immediately",
				WarningNotes: "Pneumonia can be fatal if not treated promptly. Do not wait at home.",
				WhenToSeekHelp: "Go to hospital IMMEDIATELY if: difficulty breathing, chest pain, " +
					"or the person is a child/elderly",
			}},
		},
		{
			Name:           "Typhoid",
			Description:    "Bacterial infection from contaminated food/water",
			CommonSymptoms: "fever, headache, fatigue, stomach pain, diarrhea",
			FirstAid: []lexicon.FirstAid{{
				Title: "Typhoid First Aid",
				Steps: "1. Rest and avoid solid foods\n2. Drink plenty of clean water\n" +
					"3. Oral rehydration salts (ORS) if available\n4. Take paracetamol for fever\n" +
					"5. Go to health facility for testing",
				WarningNotes: "Do not take antibiotics without prescription. " +
					"Typhoid requires specific antibiotics.",
				WhenToSeekHelp: "Seek help if: high fever >3 days, severe diarrhea, or blood in stool",
			}},
		},
		{
			Name:           "Chikungunya",
			Description:    "Viral disease transmitted by mosquitoes",
			CommonSymptoms: "fever, joint pain, headache, rash, fatigue",
		},
	}
}
