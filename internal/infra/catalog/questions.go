package catalog

import "github.com/soccorso-app/soccorso/internal/domain"

// Questions is the full question bank. Exam sessions draw a randomized
// subset; persisted answers are always keyed by the index into this slice.
var Questions = []domain.Question{
	{ID: "q_compressions_rate", Prompt: "What is the recommended chest compression rate for adult CPR?",
		Options:       []string{"60–80 per minute", "100–120 per minute", "140–160 per minute", "As fast as possible"},
		CorrectOption: 1, Explanation: "Guidelines recommend 100–120 compressions per minute at 5–6 cm depth."},
	{ID: "q_recovery_position", Prompt: "An unconscious casualty who is breathing normally should be placed…",
		Options:       []string{"Flat on their back", "Sitting upright", "In the recovery position", "Face down"},
		CorrectOption: 2, Explanation: "The recovery position keeps the airway open and lets fluids drain."},
	{ID: "q_choking_sign", Prompt: "The universal sign of choking is…",
		Options:       []string{"Clutching the chest", "Hands at the throat", "Waving both arms", "Pointing at the mouth"},
		CorrectOption: 1, Explanation: "A choking casualty typically clutches the throat with one or both hands."},
	{ID: "q_heimlich", Prompt: "Abdominal thrusts on a conscious choking adult are delivered…",
		Options:       []string{"Below the shoulder blades", "Above the navel, inward and upward", "On the lower back", "On the breastbone"},
		CorrectOption: 1, Explanation: "Thrusts go just above the navel, pulled sharply inward and upward."},
	{ID: "q_bleeding_first", Prompt: "First action for severe external bleeding?",
		Options:       []string{"Apply a tourniquet", "Direct pressure on the wound", "Rinse with water", "Elevate and wait"},
		CorrectOption: 1, Explanation: "Firm direct pressure is the first and most effective measure."},
	{ID: "q_burn_cooling", Prompt: "A thermal burn should be cooled with…",
		Options:       []string{"Ice cubes", "Butter or ointment", "Cool running water for 10–20 minutes", "A dry hot cloth"},
		CorrectOption: 2, Explanation: "Cool (not ice-cold) running water for 10–20 minutes limits tissue damage."},
	{ID: "q_fast_stroke", Prompt: "In the FAST stroke check, the letter A stands for…",
		Options:       []string{"Airway", "Arms", "Alertness", "Aspirin"},
		CorrectOption: 1, Explanation: "FAST: Face drooping, Arm weakness, Speech difficulty, Time to call."},
	{ID: "q_aed_first", Prompt: "As soon as an AED arrives during CPR you should…",
		Options:       []string{"Finish the compression cycle first", "Turn it on and follow the prompts", "Attach pads only after 5 cycles", "Check the pulse for one minute"},
		CorrectOption: 1, Explanation: "Turn the AED on immediately; it guides every following step."},
	{ID: "q_anaphylaxis", Prompt: "The first-line treatment for anaphylaxis is…",
		Options:       []string{"Oral antihistamine", "Intramuscular adrenaline", "Cold compresses", "Sugar water"},
		CorrectOption: 1, Explanation: "Intramuscular adrenaline (auto-injector) is first-line; call emergency services."},
	{ID: "q_hypothermia", Prompt: "A hypothermic casualty should be…",
		Options:       []string{"Rubbed vigorously", "Given alcohol to warm up", "Rewarmed gradually with dry insulation", "Placed in a hot bath immediately"},
		CorrectOption: 2, Explanation: "Gradual passive rewarming; rapid rewarming and alcohol are dangerous."},
	{ID: "q_seizure", Prompt: "During a tonic-clonic seizure you should…",
		Options:       []string{"Restrain the casualty", "Put something in their mouth", "Protect the head and time the seizure", "Give water immediately"},
		CorrectOption: 2, Explanation: "Never restrain or insert objects; cushion the head and time the episode."},
	{ID: "q_fracture", Prompt: "A suspected closed forearm fracture should be…",
		Options:       []string{"Straightened firmly", "Immobilized in the position found", "Massaged to reduce swelling", "Ignored if not painful"},
		CorrectOption: 1, Explanation: "Immobilize as found; never try to realign a fracture in the field."},
	{ID: "q_nosebleed", Prompt: "For a nosebleed, the casualty should…",
		Options:       []string{"Tilt the head back", "Lie down flat", "Lean forward and pinch the soft part of the nose", "Pack the nostril with cotton"},
		CorrectOption: 2, Explanation: "Lean forward, pinch below the bridge for 10 minutes; head back risks aspiration."},
	{ID: "q_shock_signs", Prompt: "Early signs of circulatory shock include…",
		Options:       []string{"Flushed warm skin", "Pale clammy skin and rapid weak pulse", "Slow deep breathing", "High fever"},
		CorrectOption: 1, Explanation: "Pallor, cold sweat, tachycardia and confusion point to shock."},
	{ID: "q_poison_call", Prompt: "After a suspected poisoning you should first…",
		Options:       []string{"Induce vomiting", "Give milk", "Call poison control / emergency services", "Wait for symptoms"},
		CorrectOption: 2, Explanation: "Never induce vomiting blindly; call poison control with the substance details."},
	{ID: "q_drowning", Prompt: "Rescue breaths for a drowning casualty…",
		Options:       []string{"Are skipped entirely", "Start with 5 initial breaths", "Are given only by doctors", "Replace compressions"},
		CorrectOption: 1, Explanation: "Drowning protocol starts with 5 rescue breaths before compressions."},
	{ID: "q_heat_stroke", Prompt: "Heat stroke differs from heat exhaustion because…",
		Options:       []string{"The skin stays cool", "Sweating increases", "Mental state is altered and skin may be hot and dry", "It only affects athletes"},
		CorrectOption: 2, Explanation: "Altered consciousness with hot skin marks the emergency form; cool aggressively."},
	{ID: "q_glasgow", Prompt: "The AVPU scale assesses…",
		Options:       []string{"Pain intensity", "Level of consciousness", "Breathing quality", "Bleeding severity"},
		CorrectOption: 1, Explanation: "AVPU: Alert, Voice, Pain, Unresponsive — a quick consciousness check."},
	{ID: "q_tourniquet", Prompt: "A tourniquet is indicated when…",
		Options:       []string{"Any wound bleeds", "Direct pressure fails on a limb with life-threatening bleeding", "The casualty faints", "A bandage is unavailable"},
		CorrectOption: 1, Explanation: "Tourniquets are for catastrophic limb bleeding uncontrolled by pressure."},
	{ID: "q_emergency_number", Prompt: "The single European emergency number is…",
		Options:       []string{"911", "112", "118", "999"},
		CorrectOption: 1, Explanation: "112 works across the EU; some countries keep legacy numbers alongside it."},
}
