package service

// Prompts for the three text-generation phases. Each one instructs the model
// to return bare JSON; the extractor still strips fences because models do
// not reliably comply.

const structuringPrompt = `You are a medical data entry specialist. Convert the text below into valid JSON matching this schema:
{
  "patient": {"full_name": "string", "dob": "YYYY-MM-DD", "mrn": "string"},
  "encounter": {"date": "YYYY-MM-DD", "provider": "string", "facility": "string"},
  "clinical": {
    "diagnosis_list": ["string"],
    "medications": [{"name": "string", "dosage": "string", "frequency": "string"}],
    "vitals": {"bp": "string", "hr": "string", "temp": "string", "weight": "string"}
  }
}
Use zero-padded ISO-8601 dates. If a field is not present in the document, use an empty string.
Return ONLY JSON.`

const clinicalPrompt = `You are a Clinical Decision Support System. Compare the Current Visit vs Past History.
Task 1: TRENDS. Compare Vitals (BP, Weight, HR). State if they are Increasing, Decreasing, or Stable.
Task 2: CONSISTENCY. Check if prescribed medications match the diagnoses.

Output JSON:
{
  "summary": "Brief clinical summary of changes.",
  "alerts": ["High Priority Alert", "Medium Priority Warning"],
  "trends": ["BP Worsening: 120/80 -> 140/90"]
}
"alerts" and "trends" must be arrays of plain strings. Return ONLY JSON.`

const insurancePrompt = `You are an Insurance Claims Adjuster.
Review the MEDICAL_DATA (Diagnosis & Treatments) and the INSURANCE_POLICY_TEXT summary.

Determine if the patient's condition is likely covered.
1. Match Diagnosis against Policy Inclusions/Exclusions.
2. Check for waiting periods or pre-existing condition clauses.

Output JSON:
{
  "eligible": true,
  "confidence": 0.8,
  "reasoning": "Explanation of why it is covered or rejected.",
  "missing_info": ["List of documents or details needed to confirm"]
}
"confidence" is a number between 0.0 and 1.0, or null if you cannot judge. Return ONLY JSON.`

// maxPolicyChars bounds how much policy text is embedded in the eligibility
// prompt. Truncation always keeps the leading portion; this is a token-budget
// control, not content selection.
const maxPolicyChars = 4000

func truncatePolicyText(policyText string) string {
	// counted in characters, not bytes, so multi-byte text keeps its full
	// budget and the cut never splits a rune
	runes := []rune(policyText)
	if len(runes) > maxPolicyChars {
		return string(runes[:maxPolicyChars])
	}
	return policyText
}
