// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "github.com/pdiddy/biomarker-engine/pkg/types"

// Default returns the built-in biomarker catalog. This is the
// authoritative source of truth for recognized biomarkers and their
// report aliases; a YAML catalog file can replace it per run.
func Default() []types.CatalogEntry {
	return []types.CatalogEntry{
		// ===== LIPID PANEL =====
		{
			Name:     "Colesterol Total",
			Aliases:  []string{"colesterol", "colesterol serico", "total cholesterol", "cholesterol"},
			Category: types.CategoryCardiovascular,
			// "colesterol" alone must not fire on fraction lines.
			SkipIf: []string{"hdl", "ldl", "vldl", "no hdl"},
		},
		{
			Name:     "Colesterol HDL",
			Aliases:  []string{"hdl", "hdl colesterol", "colesterol hdl", "hdl cholesterol"},
			Category: types.CategoryCardiovascular,
		},
		{
			Name:     "Colesterol LDL",
			Aliases:  []string{"ldl", "ldl colesterol", "colesterol ldl", "ldl cholesterol"},
			Category: types.CategoryCardiovascular,
		},
		{
			Name:     "Trigliceridos",
			Aliases:  []string{"triglicéridos", "triglycerides", "tg"},
			Category: types.CategoryCardiovascular,
		},
		{
			Name:     "Lipoproteina A",
			Aliases:  []string{"lipoproteína a", "lp a", "lipoprotein a"},
			Category: types.CategoryCardiovascular,
		},
		{
			Name:     "Homocisteina",
			Aliases:  []string{"homocisteína", "homocysteine"},
			Category: types.CategoryCardiovascular,
		},

		// ===== GLUCOSE / METABOLIC =====
		{
			Name:     "Glucosa",
			Aliases:  []string{"glucosa basal", "glucemia", "glucose", "glucosa en ayunas"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "Hemoglobina Glicosilada",
			Aliases:  []string{"hba1c", "hb a1c", "hemoglobina glicada", "hemoglobina a1c", "glycated hemoglobin"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "Insulina",
			Aliases:  []string{"insulina basal", "insulin"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "Acido Urico",
			Aliases:  []string{"ácido úrico", "uric acid", "urato"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "Creatinina",
			Aliases:  []string{"creatinina serica", "creatinine"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "Urea",
			Aliases:  []string{"nitrogeno ureico", "bun"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "GOT",
			Aliases:  []string{"ast", "got ast", "aspartato aminotransferasa", "transaminasa got"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "GPT",
			Aliases:  []string{"alt", "gpt alt", "alanina aminotransferasa", "transaminasa gpt"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "GGT",
			Aliases:  []string{"gamma gt", "gamma glutamil transferasa", "ggtp"},
			Category: types.CategoryMetabolic,
		},
		{
			Name:     "Bilirrubina Total",
			Aliases:  []string{"bilirrubina", "total bilirubin"},
			Category: types.CategoryMetabolic,
			SkipIf:   []string{"directa", "indirecta"},
		},
		{
			Name:     "Albumina",
			Aliases:  []string{"albúmina", "albumin"},
			Category: types.CategoryMetabolic,
		},

		// ===== HEMATOLOGY / IMMUNE =====
		{
			Name:     "Hemoglobina",
			Aliases:  []string{"hb", "hgb", "hemoglobin"},
			Category: types.CategoryImmune,
			// Glycated-hemoglobin lines belong to HbA1c, not hemoglobin.
			SkipIf: []string{"glicosilada", "glicada", "a1c"},
		},
		{
			Name:     "Hematocrito",
			Aliases:  []string{"hto", "hct", "hematocrit"},
			Category: types.CategoryImmune,
		},
		{
			Name:     "Leucocitos",
			Aliases:  []string{"globulos blancos", "glóbulos blancos", "white blood cells", "wbc"},
			Category: types.CategoryImmune,
		},
		{
			Name:     "Plaquetas",
			Aliases:  []string{"platelets", "recuento de plaquetas"},
			Category: types.CategoryImmune,
		},
		{
			Name:     "PCR",
			Aliases:  []string{"proteina c reactiva", "proteína c reactiva", "crp", "pcr ultrasensible"},
			Category: types.CategoryImmune,
		},
		{
			Name:     "Ferritina",
			Aliases:  []string{"ferritin"},
			Category: types.CategoryImmune,
		},
		{
			Name:     "Hierro",
			Aliases:  []string{"hierro serico", "iron", "sideremia"},
			Category: types.CategoryImmune,
			SkipIf:   []string{"capacidad", "fijacion"},
		},
		{
			Name:     "Transferrina",
			Aliases:  []string{"transferrin"},
			Category: types.CategoryImmune,
		},
		{
			Name:     "Saturacion de Transferrina",
			Aliases:  []string{"saturación de transferrina", "indice de saturacion", "transferrin saturation"},
			Category: types.CategoryImmune,
		},

		// ===== HORMONAL =====
		{
			Name:     "TSH",
			Aliases:  []string{"tirotropina", "hormona estimulante del tiroides", "thyroid stimulating hormone"},
			Category: types.CategoryHormonal,
		},
		{
			Name:     "T4 Libre",
			Aliases:  []string{"t4l", "tiroxina libre", "free t4"},
			Category: types.CategoryHormonal,
		},
		{
			Name:     "T3 Libre",
			Aliases:  []string{"t3l", "triyodotironina libre", "free t3"},
			Category: types.CategoryHormonal,
		},
		{
			Name:     "Testosterona",
			Aliases:  []string{"testosterona total", "testosterone"},
			Category: types.CategoryHormonal,
			SkipIf:   []string{"libre"},
		},
		{
			Name:     "Estradiol",
			Aliases:  []string{"e2", "estradiol 17 beta"},
			Category: types.CategoryHormonal,
		},
		{
			Name:     "Cortisol",
			Aliases:  []string{"cortisol basal"},
			Category: types.CategoryHormonal,
		},

		// ===== GENERAL / VITAMINS =====
		{
			Name:     "Vitamina D",
			Aliases:  []string{"25 oh vitamina d", "25 hidroxivitamina d", "vitamin d", "25 oh d"},
			Category: types.CategoryGeneral,
		},
		{
			Name:     "Vitamina B12",
			Aliases:  []string{"b12", "cobalamina", "vitamin b12"},
			Category: types.CategoryGeneral,
		},
		{
			Name:     "Acido Folico",
			Aliases:  []string{"ácido fólico", "folato", "folic acid"},
			Category: types.CategoryGeneral,
		},
		{
			Name:     "Sodio",
			Aliases:  []string{"na", "sodium"},
			Category: types.CategoryGeneral,
		},
		{
			Name:     "Potasio",
			Aliases:  []string{"k", "potassium"},
			Category: types.CategoryGeneral,
		},
		{
			Name:     "Calcio",
			Aliases:  []string{"ca", "calcium"},
			Category: types.CategoryGeneral,
			SkipIf:   []string{"ionico", "iónico"},
		},
		{
			Name:     "Magnesio",
			Aliases:  []string{"mg", "magnesium"},
			Category: types.CategoryGeneral,
		},
	}
}
