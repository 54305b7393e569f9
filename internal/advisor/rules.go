package advisor

import (
	"math/rand"
	"strings"
)

// Rule maps trigger substrings to a fixed reply. Triggers are lower case.
type Rule struct {
	Name     string
	Triggers []string
	Reply    string
}

// Matches reports whether any trigger occurs in the normalized utterance.
func (r Rule) Matches(normalized string) bool {
	for _, t := range r.Triggers {
		if strings.Contains(normalized, t) {
			return true
		}
	}
	return false
}

// Chooser picks an index in [0, n).
type Chooser interface {
	Intn(n int) int
}

type randChooser struct{}

func (randChooser) Intn(n int) int { return rand.Intn(n) }

// Evaluation order matters: overlapping triggers resolve to the earliest rule.
var DefaultRules = []Rule{
	{
		Name:     "pricing",
		Triggers: []string{"prix", "coût", "tarif"},
		Reply:    "Nos destinations premium commencent à 3 499€ pour Paris 1889 (5 jours), 4 799€ pour Florence Renaissance (6 jours), et 12 999€ pour le Crétacé (7 jours - expérience extrême). Chaque voyage inclut : transport temporel aller-retour, guide expert, vêtements d'époque, traducteur universel, équipement de sécurité, assurance standard et kit photo 8K. Paiement en 3x sans frais disponible.",
	},
	{
		Name:     "safety",
		Triggers: []string{"sécurité", "dangereux", "risque"},
		Reply:    "Votre sécurité est notre engagement absolu. Chaque capsule est équipée de boucliers temporels, systèmes de rapatriement d'urgence (extraction en 60 secondes), IA de surveillance continue et traceur quantique personnel. Nos guides sont certifiés avec minimum 500 heures de vol temporel. Nous avons réalisé plus de 50 000 voyages avec un taux de satisfaction de 99.8%. Certification ISO Temporelle 9001.",
	},
	{
		Name:     "duration",
		Triggers: []string{"durée", "combien de temps", "longtemps"},
		Reply:    "La relativité temporelle est notre atout majeur ! Vous pouvez vivre 5 à 7 jours complets dans l'époque choisie, tout en ne vous absentant que 4 à 8 heures de votre temps présent. Vous revenez à peine quelques heures après votre départ, sans décalage horaire ni fatigue. C'est comme suspendre le temps actuel pendant votre aventure historique.",
	},
	{
		Name:     "paradox",
		Triggers: []string{"paradoxe", "modifier", "changer le passé"},
		Reply:    "Excellente question sur la physique temporelle ! Nos capsules vous placent en 'mode observateur protégé' : vous vivez pleinement l'époque (vous pouvez voir, entendre, sentir, goûter), mais votre présence est isolée de la ligne temporelle principale par un bouclier quantique. Impossible de créer un paradoxe ou de modifier l'histoire. Vous êtes comme un fantôme invisible pour la causalité temporelle.",
	},
	{
		Name:     "recommendation",
		Triggers: []string{"recommand", "conseil", "meilleur", "choisir"},
		Reply:    "Pour une première expérience, je recommande Paris 1889 : fascinant, sûr, et culturellement riche. Pour les amateurs d'art et d'histoire, Florence Renaissance est sublime. Si vous recherchez l'aventure ultime et avez une excellente condition physique, le Crétacé offre des sensations incomparables. Quelle période historique vous attire le plus ? Je peux affiner ma recommandation.",
	},
	{
		Name:     "preparation",
		Triggers: []string{"préparer", "préparation", "emmener", "équipement"},
		Reply:    "Nous simplifions tout ! Vous recevrez 48h avant le départ un kit complet comprenant : vêtements d'époque sur mesure (pris de vos mensurations), traducteur universel en temps réel, appareil photo 8K, kit médical temporel, monnaie de l'époque, et guide de survie personnalisé. Une séance de briefing d'1h30 précède chaque départ. Apportez juste vos effets personnels et votre curiosité !",
	},
	{
		Name:     "paris",
		Triggers: []string{"paris", "1889", "eiffel", "belle époque"},
		Reply:    "Paris 1889 est notre destination la plus demandée ! Vous assisterez à l'inauguration de la Tour Eiffel, visiterez l'Exposition Universelle avec ses 61 000 exposants, profiterez d'une soirée exclusive au Moulin Rouge lors de son ouverture, et rencontrerez des artistes impressionnistes à Montmartre. 5 jours / 3 499€. Difficulté : Facile. Disponible toute l'année. Souhaitez-vous réserver ?",
	},
	{
		Name:     "cretaceous",
		Triggers: []string{"crétacé", "dinosaure", "préhistoire", "t-rex"},
		Reply:    "Le Crétacé est notre expédition la plus spectaculaire ! Safari préhistorique en capsule blindée avec observation de T-Rex en chasse, troupeaux de Triceratops, survol en drone des volcans actifs. Niveau Extrême - requiert excellente condition physique et bilan médical. 7 jours / 12 999€. Places très limitées (max 4 voyageurs par départ). Voulez-vous vérifier la disponibilité ?",
	},
	{
		Name:     "florence",
		Triggers: []string{"florence", "renaissance", "michel-ange", "david"},
		Reply:    "Florence Renaissance 1504 est pure magie culturelle ! Assistez à l'installation du David de Michel-Ange, visitez les ateliers privés de Léonard de Vinci et Michel-Ange, rencontrez Laurent II de Médicis, et participez à un cours de fresque avec un maître artisan. 6 jours / 4 799€. Difficulté : Modéré. Parfait pour les passionnés d'art et d'histoire. Je vous en dis plus ?",
	},
	{
		Name:     "booking",
		Triggers: []string{"réserver", "réservation", "book", "disponibilité"},
		Reply:    "Excellent choix ! Pour procéder à votre réservation : 1) Choisissez votre destination, 2) Sélectionnez votre date de départ, 3) Nombre de voyageurs, 4) Options d'assurance et extras. Le paiement est sécurisé (3x sans frais disponible) et vous recevrez votre kit de préparation sous 48h. Puis-je vous diriger vers notre formulaire de réservation ?",
	},
	{
		Name:     "cancellation",
		Triggers: []string{"annulation", "remboursement", "annuler"},
		Reply:    "Politique d'annulation flexible : 100% remboursé jusqu'à 30 jours avant départ, 50% entre 30-15 jours, 25% entre 15-7 jours. Moins de 7 jours : non remboursable sauf force majeure médicale. Notre assurance Premium (recommandée) couvre tous les cas d'annulation pour raison médicale, professionnelle ou familiale grave. Voulez-vous plus d'infos sur les assurances ?",
	},
	{
		Name:     "insurance",
		Triggers: []string{"assurance", "protection", "garantie"},
		Reply:    "Trois niveaux d'assurance : 1) Standard (incluse) : protection de base + rapatriement d'urgence. 2) Premium (+500€) : annulation flexible + protection étendue + assistance 24/7 prioritaire. 3) Ultimate (+1000€) : couverture maximale + protection contre paradoxes temporels + garantie satisfaction totale. Je recommande Premium pour votre tranquillité d'esprit.",
	},
}

// DefaultReplies answer utterances no rule matches.
var DefaultReplies = []string{
	"Question intéressante ! Nos experts peuvent vous fournir une réponse détaillée. Quelle destination ou époque vous attire particulièrement ?",
	"Je suis là pour vous guider. Préférez-vous explorer l'Antiquité, la Renaissance, l'ère industrielle, ou partir à l'aventure préhistorique ?",
	"TimeTravel Agency vous ouvre les portes de l'histoire. Puis-je vous recommander une destination selon vos centres d'intérêt ?",
	"Excellente question. Pour mieux vous conseiller, dites-moi : recherchez-vous une expérience culturelle, une aventure extrême, ou un mélange des deux ?",
}

// MatchRule returns the first rule whose triggers occur in utterance.
func MatchRule(rules []Rule, utterance string) (Rule, bool) {
	normalized := strings.ToLower(utterance)
	for _, r := range rules {
		if r.Matches(normalized) {
			return r, true
		}
	}
	return Rule{}, false
}
