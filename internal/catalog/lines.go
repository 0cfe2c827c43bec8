package catalog

import "github.com/huzzai/rizz-coach/internal/model"

const (
	General    = "general"
	CoffeeShop = "coffee-shop"
	Gym        = "gym"
	Bookstore  = "bookstore"
)

var generalLines = []model.PickupLine{
	{Text: "I must be a snowflake, because I've fallen for you.", Tone: model.ToneSubtle},
	{Text: "Are you a camera? Because every time I look at you, I smile.", Tone: model.ToneSubtle},
	{Text: "I was feeling a bit off today, but seeing you turned my day right-side up.", Tone: model.ToneCasual},
	{Text: "Are you made of copper and tellurium? Because you're Cu-Te.", Tone: model.ToneCasual},
	{Text: "If you were a vegetable, you'd be a cute-cumber.", Tone: model.ToneCasual},
	{Text: "If I could rearrange the alphabet, I'd put 'U' and 'I' together.", Tone: model.ToneCasual},
	{Text: "Are you French? Because Eiffel for you.", Tone: model.ToneCasual},
	{Text: "If you were a fruit, you'd be a fine-apple.", Tone: model.ToneCasual},
	{Text: "Do you have a map? Because I keep getting lost in your eyes.", Tone: model.ToneFlirty},
	{Text: "Is your name Google? Because you have everything I've been searching for.", Tone: model.ToneFlirty},
	{Text: "I'm not a photographer, but I can picture us together.", Tone: model.ToneFlirty},
	{Text: "Do you believe in love at first sight, or should I walk by again?", Tone: model.ToneFlirty},
	{Text: "I must be in a museum, because you're a work of art.", Tone: model.ToneFlirty},
	{Text: "Are you an interior decorator? Because when I saw you, the entire room became beautiful.", Tone: model.ToneFlirty},
	{Text: "I was going to say something really sweet about you, but I got lost in your eyes.", Tone: model.ToneFlirty},
	{Text: "I'm not a mathematician, but I'm pretty good with numbers. For example, I know yours is missing from my phone.", Tone: model.ToneFlirty},
	{Text: "Are you a Wi-Fi signal? Because I'm feeling a strong connection and want to see if we can Netflix and chill... responsibly. 😉", Tone: model.ToneBold},
	{Text: "Is it hot in here or is it just you?", Tone: model.ToneBold},
	{Text: "Are you a parking ticket? Because you've got FINE written all over you.", Tone: model.ToneBold},
	{Text: "Feel my shirt... know what it's made of? Boyfriend/girlfriend material.", Tone: model.ToneBold},
	{Text: "Do you have a name or can I call you mine?", Tone: model.ToneBold},
	{Text: "Your lips look lonely... would they like to meet mine?", Tone: model.ToneSpicy},
}

var coffeeShopLines = []model.PickupLine{
	{Text: "Do you mind if I sit here? My coffee tastes better with good company.", Tone: model.ToneSubtle},
	{Text: "Is your name Mocha? Because you're giving me a real pick-me-up.", Tone: model.ToneCasual},
	{Text: "I think there's something wrong with my coffee, it's not as sweet as your smile.", Tone: model.ToneFlirty},
	{Text: "Is your name Espresso? Because you've shot straight to my heart.", Tone: model.ToneFlirty},
	{Text: "I was going to order a coffee, but watching you has already given me enough energy for the day.", Tone: model.ToneFlirty},
	{Text: "I'd like to buy you a coffee, but it seems you're already the hottest thing here.", Tone: model.ToneBold},
	{Text: "I like my coffee how I like my potential dates - sweet, hot, and able to keep me up all night.", Tone: model.ToneSpicy},
}

var gymLines = []model.PickupLine{
	{Text: "I don't know if that's your workout routine or your personality, but I'm impressed either way.", Tone: model.ToneCasual},
	{Text: "I'd spot you any day, if you'd spot me sometime over dinner?", Tone: model.ToneFlirty},
	{Text: "Is your name Fitness? Because you're fit-ness perfectly into my life.", Tone: model.ToneFlirty},
	{Text: "Are you a personal trainer? Because you're working my heart rate up just by standing there.", Tone: model.ToneBold},
	{Text: "You must be doing cardio because you're making my heart race from across the room.", Tone: model.ToneBold},
	{Text: "Excuse me, I think you dropped something: my jaw.", Tone: model.ToneBold},
	{Text: "I'm not staring, I'm just admiring your form... both your exercise form and, well, your form.", Tone: model.ToneSpicy},
}

var bookstoreLines = []model.PickupLine{
	{Text: "I couldn't help but notice you're in this aisle - that's one of my favorites too. What are you reading?", Tone: model.ToneSubtle},
	{Text: "I can't decide what's more captivating - this book or your presence.", Tone: model.ToneCasual},
	{Text: "If I were a bookstore, I'd put you in the 'Recommended' section.", Tone: model.ToneFlirty},
	{Text: "Is your favorite genre romance? Because I think we could write our own love story.", Tone: model.ToneFlirty},
	{Text: "Excuse me, do you know where I can find books on perfect chemistry? Oh wait, never mind, I just found it standing right here.", Tone: model.ToneBold},
	{Text: "Are you a rare book? Because I'd love to check you out.", Tone: model.ToneBold},
}

var defaultGroups = []keywordGroup{
	{keywords: []string{"coffee", "cafe"}, collection: CoffeeShop},
	{keywords: []string{"gym", "workout"}, collection: Gym},
	{keywords: []string{"book", "library"}, collection: Bookstore},
}

// ExampleScenarios are the suggestions offered next to the scenario input.
var ExampleScenarios = []string{
	"At a coffee shop",
	"Gym rizz",
	"Bookstore encounter",
	"Dating app opener",
	"At a concert",
	"Study buddies",
}
