package types

// game (room snapshot, carried by every event):
//   gridSize: number
//   maxPlayers: number
//   players: [{ id, name, avatar: {variant, colors}, board,
//               markedCells: ["row-col"], completedLines, bingoCount,
//               isReady }]
//   currentPlayer: string // player id holding the turn
//   calledNumbers: number[]
//   gameState: "waiting" | "playing" | "finished"
//   winner: string // player id, present once finished
