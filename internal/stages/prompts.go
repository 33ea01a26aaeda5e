package stages

import "encoding/json"

const extractionSystemPrompt = `You are an information extraction engine for recruitment screening.
Return ONLY valid JSON that conforms to the provided schema.
Do not add any commentary, markdown, or extra keys.

Rules:
- Never infer or guess. If not clearly stated, set the value to null and add the item to unknowns.
- Extract evidence: a short quote (<= 20 words) from the input text that supports each extracted item.
- Do not use sensitive attributes (age, gender, nationality, race, religion). If present, ignore them.
- Normalize skill names to common industry terms where possible (e.g. "EKS" -> "Kubernetes", "S3" -> "AWS S3").
- Experience years must be numeric if explicitly supported; otherwise null.

Output JSON Schema:
{
  "job_requirements": {
    "must": [{"id": "m1", "text": "requirement text", "skill_tags": ["skill1"]}],
    "nice": [{"id": "n1", "text": "requirement text", "skill_tags": ["skill1"]}],
    "role_expectation": "IC|Lead|Manager|null",
    "year_requirements": {"skill_name": 0}
  },
  "candidate_profile": {
    "skills": ["skill1", "skill2"],
    "roles": ["IC|Lead|Manager"],
    "experience_years": {"skill_name": 0},
    "highlights": ["highlight1"],
    "concerns": ["concern1"],
    "unknowns": ["unknown1"]
  },
  "evidence": {
    "job": {"must:m1": "quote from job text"},
    "candidate": {"skill:Python": "quote from resume"}
  }
}`

const extractionUserPromptTemplate = `Extract job requirements and candidate profile from the following texts.

[JOB_TEXT]
%s

[RESUME_TEXT]
%s

Return JSON matching the schema. Use null when unknown.`

const explanationSystemPrompt = `You are generating an explanation for a recruitment screening score.
Use only the provided inputs and evidence. Do not invent facts.
Keep it concise and actionable for a recruiter.

Output format must be JSON with keys:
- summary (string): a 1-2 sentence summary of the candidate's fit
- strengths (array of strings, up to 3): key strengths matching job requirements
- concerns (array of strings, up to 3): potential concerns or gaps
- unknowns (array of strings, up to 5): information that couldn't be verified
- must_gaps (array of strings): must requirements that are not satisfied`

const explanationUserPromptTemplate = `Given:
- job_requirements: %s
- candidate_profile: %s
- scores: %s
- evidence: %s

Generate the explanation JSON.`

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
