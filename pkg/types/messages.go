package types

// Client -> Server (websocket, after joining via GET /ws?room=&name=&avatar=)
// set-board:
//   board: number[][] // size×size permutation of 1..size²; omit for a
//                     // server-generated random board
//
// call-number:
//   number: number // 1..gridSize², only on your turn

// Server -> Client
// joined-room:      { game }   // to the joining client only
// player-joined:    { game }   // to everyone else in the room
// player-left:      { game }
// player-ready:     { game }
// game-started:     { game }   // fires once all players are ready (min 2)
// number-called:    { number, game, winner? }
// error:            { message } // to the offending client only
