package game

import (
	"sort"

	"github.com/google/uuid"
)

// EventTable 是预装载的格子事件查找表，构建完成后只读
// 格子 0 是起点，刻意没有事件
type EventTable struct {
	events map[int]*CellEvent
}

func (t *EventTable) Lookup(cell int) (*CellEvent, bool) {
	ev, ok := t.events[cell]
	return ev, ok
}

// All 按格子序号返回全部事件，供客户端预加载文案
func (t *EventTable) All() []*CellEvent {
	all := make([]*CellEvent, 0, len(t.events))

	for _, ev := range t.events {
		all = append(all, ev)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Cell < all[j].Cell
	})

	return all
}

func fixedEvent(cell int, title, description, dictorSpeech string, outcomes ...FixedEntry) *CellEvent {
	return &CellEvent{
		ID:             uuid.NewString(),
		Cell:           cell,
		Title:          title,
		Description:    description,
		DictorSpeech:   dictorSpeech,
		ResolutionMode: MODE_FIXED,
		FixedOutcomes:  outcomes,
		RollOutcomes:   []RollEntry{},
	}
}

func rollEvent(cell int, title, description, dictorSpeech string, entries ...RollEntry) *CellEvent {
	return &CellEvent{
		ID:             uuid.NewString(),
		Cell:           cell,
		Title:          title,
		Description:    description,
		DictorSpeech:   dictorSpeech,
		ResolutionMode: MODE_ROLL,
		FixedOutcomes:  []FixedEntry{},
		RollOutcomes:   entries,
	}
}

func fx(outcome Outcome, target, text string) FixedEntry {
	return FixedEntry{Outcome: outcome, Target: target, Text: text}
}

func rl(kind string, from, to int, outcome Outcome, target, text string) RollEntry {
	return RollEntry{ResultKind: kind, From: from, To: to, Outcome: outcome, Target: target, Text: text}
}

func NewEventTable() *EventTable {
	events := []*CellEvent{
		rollEvent(1, "Crusades! And they concern everyone!", "All players have to roll the dice.", "",
			rl(RESULT_LOSE, 1, 1, Eliminate{}, TARGET_ALL_PLAYERS, "You die heroically for the faith."),
			rl(RESULT_TIE, 2, 4, OutcomeNone{}, TARGET_ALL_PLAYERS, "You dodged the bullet in time and now you're preaching peace. Nothing happens."),
			rl(RESULT_WIN, 5, 6, MoveByOffset{Offset: 3}, TARGET_ALL_PLAYERS, "You returned with wealth. Move forward 3 spaces.")),

		fixedEvent(2, "Franciscan Order", "You are joining the Franciscan Order. No possessions, no luxury – only humility. Look within yourself. Skip 2 rounds.", "",
			fx(SkipTurns{Turns: 2}, TARGET_CURRENT_PLAYER, "Skip 2 rounds.")),

		fixedEvent(3, "Age of knights", "It's the age of knights and you are one of them from within. Roll the dice again.", "",
			fx(RepeatTurn{}, TARGET_CURRENT_PLAYER, "Roll the dice again.")),

		rollEvent(4, "Appendicitis", "Believe me – you wouldn't want that in the year 1200! Roll again.", "",
			rl(RESULT_WIN, 1, 4, OutcomeNone{}, TARGET_CURRENT_PLAYER, "You survived."),
			rl(RESULT_LOSE, 5, 6, Eliminate{}, TARGET_CURRENT_PLAYER, `You'll die from the infection. It's not called the "Dark Ages" for nothing.`)),

		fixedEvent(5, "Festival nobleman", "You were bumped into by a man at a festival, and you confronted him about it. It turned out he was a nobleman. You are skipping a turn.", "",
			fx(SkipTurns{Turns: 1}, TARGET_CURRENT_PLAYER, "Skip 1 turn.")),

		fixedEvent(6, "Farmers starving", "Your farmers are starving and it's your fault. Go back 2 spaces.", "",
			fx(MoveByOffset{Offset: -2}, TARGET_CURRENT_PLAYER, "Go back 2 spaces.")),

		fixedEvent(7, "Hardworking farmers", "Your farmers were hardworking! Move forward 2 spaces.", "",
			fx(MoveByOffset{Offset: 2}, TARGET_CURRENT_PLAYER, "Move forward 2 spaces.")),

		rollEvent(8, "Monks brew beer", "You're visiting monks who brew beer. You weren't aware of your alcohol problem before. Roll again.", "",
			rl(RESULT_LOSE, 1, 1, SkipTurns{Turns: 2}, TARGET_CURRENT_PLAYER, "Stay 2 moves with the monks."),
			rl(RESULT_TIE, 2, 6, OutcomeNone{}, TARGET_CURRENT_PLAYER, "Next time you may go.")),

		rollEvent(9, "Castle under siege", "Your castle is under siege. Roll again.", "",
			rl(RESULT_LOSE, 1, 3, SkipTurns{Turns: 1}, TARGET_CURRENT_PLAYER, "Your castle has fallen. You managed to hide in time. Skip 1 round."),
			rl(RESULT_WIN, 4, 6, MoveByOffset{Offset: 1}, TARGET_CURRENT_PLAYER, `You could defend the castle. Call out "Long live King Henry!" and go forward 1 space.`)),

		rollEvent(10, "Peasant uprising", "It's a peasant uprising and you're a nobleman. Roll again.", "",
			rl(RESULT_LOSE, 1, 3, SkipTurns{Turns: 2}, TARGET_CURRENT_PLAYER, "Your castle is being plundered. Skip 2 moves."),
			rl(RESULT_TIE, 4, 6, OutcomeNone{}, TARGET_CURRENT_PLAYER, "You dressed up as a farmer. Good idea! Smile and be happy. It could be worse.")),

		fixedEvent(11, "Visit the Pope", "You went to see the Pope and you were very successful at sucking up to him. Move forward 1 space.", "",
			fx(MoveByOffset{Offset: 1}, TARGET_CURRENT_PLAYER, "Move forward 1 space.")),

		fixedEvent(12, "Spy for the Inquisition", "You are a spy for the Inquisition. A player of your choice moves back 5 spaces. The Vatican is proud of you.", "",
			fx(MoveByOffset{Offset: -5}, TARGET_CHOSEN_PLAYER, "A chosen player moves back 5 spaces.")),

		fixedEvent(13, "Sell indulgences", "You managed to sell 12 indulgences for the same sin to an illiterate person. God will forgive you, if you truly believe. Move forward 1 space.", "",
			fx(MoveByOffset{Offset: 1}, TARGET_CURRENT_PLAYER, "Move forward 1 space.")),

		rollEvent(14, "Children to monastery", "All your children go to a monastery. Roll again.", "Religion also has disadvantages.",
			rl(RESULT_LOSE, 1, 3, SkipTurns{Turns: 2}, TARGET_CURRENT_PLAYER, "You will never have grandchildren. Skip 2 moves. Religion also has disadvantages."),
			rl(RESULT_TIE, 4, 6, OutcomeNone{}, TARGET_CURRENT_PLAYER, "The children found the monastery too strenuous. We were lucky again!")),

		fixedEvent(15, "Bullied kid becomes Pope", "The guy you beat up as a kid becomes Pope. You argue that a Christian must forgive. He promised to think about it. You flee on field 8.", "",
			fx(MoveToCell{Cell: 8}, TARGET_CURRENT_PLAYER, "Move immediately to field 8.")),

		rollEvent(16, "Plague", "The plague hit hard. Roll again.", "",
			rl(RESULT_WIN, 1, 4, OutcomeNone{}, TARGET_CURRENT_PLAYER, "You were lucky, life goes on."),
			rl(RESULT_LOSE, 5, 6, Eliminate{}, TARGET_CURRENT_PLAYER, "You had the plague.")),

		fixedEvent(17, "Printing press invented", "The printing press was invented. Rejoice. You will be significantly better off in just 500 years because of this.", "Rejoice.",
			fx(OutcomeNone{}, TARGET_CURRENT_PLAYER, "Nothing happens.")),

		rollEvent(18, "Malleus Maleficarum", "You are on the field Malleus Maleficarum. All women in the game have to roll the dice.", `It's not called "the Dark Ages" for nothing.`,
			rl(RESULT_LOSE, 6, 6, Eliminate{}, TARGET_WOMEN, "Anyone who rolls a 6 is out of the game."),
			rl(RESULT_TIE, 1, 5, OutcomeNone{}, TARGET_WOMEN, "The others were lucky.")),

		fixedEvent(19, "Looked out the window", "While others were learning to read, you were looking out the window (yes, for the entire 8 years). Go back to field 17.", "",
			fx(MoveToCell{Cell: 17}, TARGET_CURRENT_PLAYER, "Move immediately to field 17.")),

		rollEvent(20, "da Vinci helicopter", "Leonardo da Vinci draws a helicopter. Roll again.", "If you don't want progress, don't stop others from making it.",
			rl(RESULT_LOSE, 1, 2, SkipTurns{Turns: 1}, TARGET_CURRENT_PLAYER, "You think it's the devil's work -> suspend a turn. If you don't want progress, don't stop others from making it."),
			rl(RESULT_TIE, 3, 4, OutcomeNone{}, TARGET_CURRENT_PLAYER, "You don't care. Smile and be happy. You are not capable of more than that."),
			rl(RESULT_WIN, 5, 6, RepeatTurn{}, TARGET_CURRENT_PLAYER, "You have difficulty forming your own opinion. Pass the cube on.")),

		rollEvent(21, "1492 America rediscovered", "It is the year 1492, America is rediscovered. Roll again.", "Smile and be happy. It could be worse.",
			rl(RESULT_LOSE, 1, 2, SkipTurns{Turns: 1}, TARGET_CURRENT_PLAYER, "You're sad because you actually wanted Indian spices -> suspend a turn."),
			rl(RESULT_TIE, 3, 4, OutcomeNone{}, TARGET_CURRENT_PLAYER, "You set off but didn't arrive – the sea was simply too rough."),
			rl(RESULT_WIN, 5, 6, OutcomeNone{}, TARGET_CURRENT_PLAYER, "You can't read, you know nothing about America -> smile and be glad. You are not capable of more than that.")),

		rollEvent(22, "The Reformation", "For some it's good, for others not. Roll again.", "",
			rl(RESULT_WIN, 1, 2, SkipTurns{Turns: 1}, TARGET_CURRENT_PLAYER, "Actually, you love confessions and incense. You are sad and suspend a turn."),
			rl(RESULT_TIE, 3, 4, OutcomeNone{}, TARGET_CURRENT_PLAYER, "The priest now legal. You think it's good to be able to have a woman. Smile and be happy. It could be worse."),
			rl(RESULT_LOSE, 5, 6, OutcomeNone{}, TARGET_CURRENT_PLAYER, "You're basically worshipping the tooth fairy. Smile and be happy. It could be worse.")),

		fixedEvent(23, "Confessions and incense", "Actually, you love confessions and incense. You are sad and suspend a turn. The priest now legal: you think it's good to be able to have a woman. Smile and be happy. It could be worse.", "Smile and be happy. It could be worse.",
			fx(SkipTurns{Turns: 1}, TARGET_CURRENT_PLAYER, "Suspend a turn.")),

		fixedEvent(24, "Ottomans strong", "The Ottomans are currently strong. All Muslims move forward one space. All others move back one space.", "",
			fx(MoveByOffset{Offset: 1}, TARGET_MUSLIMS, "All Muslims move forward one space."),
			fx(MoveByOffset{Offset: -1}, TARGET_NON_MUSLIMS, "All others move back one space.")),

		rollEvent(25, "Thirty Years' War", "The Thirty Years' War mercilessly paralyzes all of Europe. Roll again.", "",
			rl(RESULT_LOSE, 1, 1, Eliminate{}, TARGET_CURRENT_PLAYER, "You die in battle."),
			rl(RESULT_TIE, 2, 2, Eliminate{}, TARGET_CURRENT_PLAYER, "You die without ever having fought."),
			rl(RESULT_WIN, 3, 6, SkipTurns{Turns: 2}, TARGET_CURRENT_PLAYER, "Skip 2 moves.")),

		fixedEvent(26, "Peace after war", "Peace comes after war. Smile and be happy. Try to recover until the next war.", "Smile and be happy.",
			fx(OutcomeNone{}, TARGET_CURRENT_PLAYER, "Nothing happens.")),

		fixedEvent(27, "Banker in Florence", "You become a banker in Florence. The Pope needs a loan – you gladly help (for an interest rate, of course). Move forward 2 spaces.", "",
			fx(MoveByOffset{Offset: 2}, TARGET_CURRENT_PLAYER, "Move forward 2 spaces.")),

		rollEvent(28, "Telescope discoveries", "You observe the sky with a telescope, discover many new things, and publish a book about it. The church takes notice of you. Roll again.", "You survived!",
			rl(RESULT_TIE, 1, 2, SkipTurns{Turns: 1}, TARGET_CURRENT_PLAYER, "You recant your discoveries and beg for mercy. Skip 1 move."),
			rl(RESULT_LOSE, 3, 4, Eliminate{}, TARGET_CURRENT_PLAYER, "You will be accused of heresy and end up at the stake."),
			rl(RESULT_WIN, 5, 6, MoveByOffset{Offset: 3}, TARGET_CURRENT_PLAYER, "You are revolutionizing science - go forward 3 spaces, you survived!")),

		rollEvent(29, "Industrialization begins", "Industrialization begins. Roll again.", "Rejoice.",
			rl(RESULT_LOSE, 1, 3, OutcomeNone{}, TARGET_CURRENT_PLAYER, "Rejoice. You will be significantly better off in just 200 years because of this"),
			rl(RESULT_WIN, 4, 6, SkipTurns{Turns: 2}, TARGET_CURRENT_PLAYER, "You prefer honest, manual labor in the field - even if you're pulling the plow yourself. Skip 2 moves")),
	}

	table := make(map[int]*CellEvent, len(events))

	for _, ev := range events {
		table[ev.Cell] = ev
	}

	return &EventTable{events: table}
}
