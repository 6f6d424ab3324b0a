package generator

// Topics are the focus categories drawn from when the caller gives none.
var Topics = []string{
	"World history",
	"Geography and capitals",
	"Natural sciences",
	"Space and astronomy",
	"Human body and medicine",
	"Animals and nature",
	"Literature and famous authors",
	"Art and painters",
	"Classical and popular music",
	"Film and television",
	"Sports and the Olympics",
	"Food and cuisine around the world",
	"Inventions and technology",
	"Mathematics and famous puzzles",
	"Languages and etymology",
	"Mythology and folklore",
	"Architecture and landmarks",
	"Economics and famous companies",
	"Japanese culture and history",
	"Everyday life and common knowledge",
}
