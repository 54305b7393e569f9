package catalog

var destinations = []Destination{
	{
		ID:          "1",
		Name:        "Paris, Belle Époque",
		Era:         "XIXe siècle",
		Year:        "1889",
		Description: "Revivez l'inauguration de la Tour Eiffel lors de l'Exposition Universelle. Plongez dans l'âge d'or parisien, entre art nouveau et révolution industrielle.",
		Highlights: []string{
			"Inauguration de la Tour Eiffel par Gustave Eiffel lui-même",
			"Visite privée de l'Exposition Universelle avec plus de 61 000 exposants",
			"Soirée exclusive au Moulin Rouge lors de son ouverture",
			"Rencontre avec des artistes impressionnistes dans les cafés de Montmartre",
		},
		Activities: []string{
			"Ascension de la Tour Eiffel avec vue panoramique sur Paris",
			"Dégustation gastronomique chez Maxim's",
			"Atelier de photographie avec les premiers appareils",
			"Promenade en calèche dans le Bois de Boulogne",
			"Visite des ateliers d'art nouveau",
		},
		HistoricalFacts: []string{
			"La Tour Eiffel devait être détruite après 20 ans mais fut sauvée grâce à son utilité pour les transmissions radio.",
			"L'Exposition Universelle de 1889 a accueilli 32 millions de visiteurs.",
			"Le Moulin Rouge a ouvert ses portes le 6 octobre 1889 avec la première représentation du French Cancan.",
		},
		Duration:   "5 jours",
		Difficulty: DifficultyEasy,
		Price:      "3 499€",
		Rating:     4.9,
	},
	{
		ID:          "2",
		Name:        "Crétacé Supérieur",
		Era:         "Préhistoire",
		Year:        "-66 millions d'années",
		Description: "Observez les derniers géants de la Terre dans leur habitat naturel. Une aventure extrême au cœur du monde préhistorique, dans notre capsule de protection ultime.",
		Highlights: []string{
			"Observation de Tyrannosaurus Rex en chasse depuis notre capsule sécurisée",
			"Vol en drone temporel au-dessus des forêts luxuriantes du Crétacé",
			"Troupeaux de dinosaures herbivores dans leur migration saisonnière",
			"Plage préhistorique avec nidification de dinosaures marins",
		},
		Activities: []string{
			"Safari préhistorique en capsule blindée tout-terrain",
			"Session photo 8K avec équipement professionnel fourni",
			"Observation nocturne de la faune crétacée",
			"Survol en drone des volcans actifs",
			"Collecte d'échantillons virtuels (répliques 3D à ramener)",
		},
		HistoricalFacts: []string{
			"Le T-Rex avait la morsure la plus puissante de tous les animaux terrestres : 5 700 kg de pression.",
			"L'atmosphère contenait 50% plus d'oxygène qu'aujourd'hui, permettant l'existence de créatures gigantesques.",
			"Cette époque s'est terminée brutalement il y a 66 millions d'années avec l'impact d'un astéroïde de 10 km de diamètre.",
		},
		Duration:   "7 jours",
		Difficulty: DifficultyExtreme,
		Price:      "12 999€",
		Rating:     5.0,
	},
	{
		ID:          "3",
		Name:        "Florence Renaissance",
		Era:         "XVIe siècle",
		Year:        "1504",
		Description: "Assistez à l'inauguration du David de Michel-Ange. Immergez-vous dans le berceau de la Renaissance italienne, entre art, science et humanisme.",
		Highlights: []string{
			"Installation du David de Michel-Ange sur la Piazza della Signoria",
			"Visite privée des ateliers de Michel-Ange et Léonard de Vinci",
			"Audience avec Laurent II de Médicis au Palazzo Vecchio",
			"Participation à un banquet Renaissance avec musiciens et poètes",
		},
		Activities: []string{
			"Cours de fresque avec un maître artisan de l'époque",
			"Visite des collections privées des Médicis",
			"Promenade sur le Ponte Vecchio et ses orfèvres",
			"Assister à une représentation théâtrale Renaissance",
			"Exploration des jardins secrets de Florence",
		},
		HistoricalFacts: []string{
			"Le David de Michel-Ange mesure 5,17 mètres et pèse 5 660 kg. Il a été sculpté dans un seul bloc de marbre de Carrare.",
			"Florence comptait 70 000 habitants en 1504 mais possédait plus d'artistes et de banques que n'importe quelle ville d'Europe.",
			"Léonard de Vinci et Michel-Ange, tous deux présents à Florence en 1504, étaient des rivaux notoires.",
		},
		Duration:   "6 jours",
		Difficulty: DifficultyModerate,
		Price:      "4 799€",
		Rating:     4.8,
	},
}

var extras = []Extra{
	{ID: "translator-50", Label: "Traducteur premium 50 langues"},
	{ID: "camera-12k-drone", Label: "Appareil photo temporel 12K + drone"},
	{ID: "certified-souvenirs", Label: "Collection souvenirs d'époque certifiés"},
	{ID: "vip-events", Label: "Accès VIP événements historiques exclusifs"},
}
