package plan

// Default returns the built-in tier catalog. Prices are monthly TRY. The
// typed limits are derived from the display strings at startup so a pricing
// copy edit cannot desynchronize from enforcement.
func Default() Catalog {
	return Catalog{
		mustPlan(TierFree, "Ücretsiz", 0,
			"2 Proje",
			"75 Form Doldurma/Proje",
			"5 Dakika Ses Üretimi",
		),
		mustPlan(TierBasic, "Başlangıç", 199,
			"5 Proje",
			"500 Form Doldurma/Proje",
			"30 Dakika Ses Üretimi",
		),
		mustPlan(TierPro, "Profesyonel", 399,
			"15 Proje",
			"2500 Form Doldurma/Proje",
			"120 Dakika Ses Üretimi",
		),
		mustPlan(TierUnlimited, "Sınırsız", 799,
			"Sınırsız Proje",
			"Sınırsız Form Doldurma",
			"300 Dakika Ses Üretimi",
		),
	}
}

func mustPlan(tier Tier, name string, price float64, features ...string) Plan {
	return Plan{
		Tier:     tier,
		Name:     name,
		Price:    price,
		Features: features,
		Limits:   MustLimitsFromFeatures(features),
	}
}
