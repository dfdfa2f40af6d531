package squad

var firstNames = []string{
	"Aaron", "Adrien", "Alejandro", "Andrea", "Bruno", "Callum", "Dani", "Diego",
	"Emil", "Enzo", "Federico", "Florian", "Gabriel", "Hakim", "Ilkay", "Jamal",
	"Joao", "Jonas", "Kai", "Kevin", "Leon", "Luka", "Marco", "Mateo",
	"Nico", "Oscar", "Pedro", "Rafael", "Sami", "Thiago", "Victor", "Youssef",
}

var lastNames = []string{
	"Almeida", "Berg", "Costa", "Dias", "Eriksen", "Fernandes", "Garcia", "Havertz",
	"Ibrahimovic", "Jensen", "Kovac", "Lindqvist", "Martinez", "Novak", "Okafor", "Pereira",
	"Quintero", "Rossi", "Silva", "Torres", "Ulloa", "Varga", "Weber", "Yilmaz",
}

var countries = []string{
	"Argentina", "Belgium", "Brazil", "Croatia", "Denmark", "England", "France", "Germany",
	"Italy", "Japan", "Mexico", "Morocco", "Netherlands", "Nigeria", "Norway", "Portugal",
	"Senegal", "Serbia", "Spain", "Sweden", "Turkey", "Uruguay", "USA",
}

var cities = []string{
	"Aston", "Bristol", "Cardiff", "Dover", "Exeter", "Fulton", "Glasgow", "Hull",
	"Ipswich", "Kingston", "Leeds", "Milton", "Norwich", "Oxford", "Preston", "Reading",
}

var mascots = []string{
	"Athletic", "City", "Rovers", "United", "Wanderers", "Albion", "Rangers", "Town",
}
