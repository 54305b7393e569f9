package catalog

// FAQEntry is one question of the accordion.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var faq = []FAQEntry{
	{
		Question: "Comment fonctionne le voyage temporel ?",
		Answer:   "Notre technologie brevetée utilise des capsules quantiques qui créent un tunnel spatio-temporel stable. Vous voyagez physiquement dans le temps tout en restant dans une bulle de protection qui préserve votre intégrité temporelle. Chaque voyage est accompagné d'un guide expert et supervisé par notre centre de contrôle temporel 24/7.",
	},
	{
		Question: "Est-ce dangereux ? Quelles sont les garanties de sécurité ?",
		Answer:   "La sécurité est notre priorité absolue. Nos capsules sont équipées de boucliers temporels, de systèmes de rapatriement d'urgence instantané, et d'une IA de surveillance continue. Vous portez un traceur quantique qui permet votre localisation et extraction en moins de 60 secondes. Nous avons réalisé plus de 50 000 voyages sans incident majeur. Certification ISO Temporelle 9001 depuis 2024.",
	},
	{
		Question: "Puis-je modifier le passé ou créer un paradoxe temporel ?",
		Answer:   "Non. Notre technologie vous place en mode 'observateur protégé' : vous pouvez voir, entendre et vivre l'époque, mais votre présence n'affecte pas la ligne temporelle principale. C'est comme regarder à travers une fenêtre unidirectionnelle. Nos protocoles de sécurité temporelle empêchent toute interaction qui pourrait créer un paradoxe.",
	},
	{
		Question: "Combien de temps dure un voyage dans le présent ?",
		Answer:   "Grâce à la relativité temporelle, vous pouvez passer plusieurs jours dans le passé tout en ne vous absentant que quelques heures de votre époque. Par exemple, un voyage de 5 jours dans le Paris de 1889 ne prend que 6 heures dans le présent. Vous revenez exactement 6 heures après votre départ, reposé et sans décalage horaire.",
	},
	{
		Question: "Quel équipement dois-je apporter ?",
		Answer:   "Pratiquement rien ! Nous fournissons tout l'équipement nécessaire : vêtements d'époque sur mesure, traducteur universel temps réel, kit médical temporel, appareil photo 8K, et guide de survie de l'époque. Apportez simplement vos effets personnels essentiels. Vous recevrez un kit de préparation complet 48h avant le départ avec toutes les instructions.",
	},
	{
		Question: "Quels sont les prérequis médicaux ?",
		Answer:   "Un bilan médical standard est requis avant tout voyage. Les destinations 'Facile' et 'Modéré' sont accessibles à tous en bonne santé générale. Les voyages 'Extrême' (comme le Crétacé) nécessitent une excellente condition physique et un certificat médical spécifique. Les femmes enceintes et les personnes avec des pathologies cardiaques graves ne peuvent pas voyager.",
	},
	{
		Question: "Puis-je ramener des souvenirs de l'époque ?",
		Answer:   "Pour des raisons de préservation temporelle, ramener des objets physiques du passé est strictement interdit. Cependant, nous créons des répliques 3D haute fidélité de tout objet que vous souhaitez 'ramener'. Vous repartez avec des photos et vidéos 8K illimitées de votre voyage. Certaines destinations offrent des souvenirs période reconstitués par nos artisans.",
	},
	{
		Question: "Quelle est votre politique d'annulation ?",
		Answer:   "Annulation gratuite jusqu'à 30 jours avant le départ (remboursement à 100%). Entre 30 et 15 jours : remboursement à 50%. Entre 15 et 7 jours : remboursement à 25%. Moins de 7 jours : non remboursable sauf cas de force majeure (maladie grave avec certificat médical). Nous recommandons vivement l'assurance annulation Premium qui couvre tous les cas.",
	},
}

// FAQ returns the frequently asked questions in display order.
func FAQ() []FAQEntry {
	out := make([]FAQEntry, len(faq))
	copy(out, faq)
	return out
}
