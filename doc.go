// Package billboard is a small retained-mode 3D billboard sprite layer for
// [Ebitengine].
//
// A [Scene] owns an orbit camera, point lights, and any number of
// [SpriteManager] batches. Each manager draws its sprites from one validated
// [SpriteSheet]; each [Sprite] is a camera-facing quad positioned in 3D space
// with its own angle, size, mirror flags, and frame animation.
//
// # Quick start
//
//	scene := billboard.NewScene()
//	cam := scene.NewArcRotateCamera("camera", 1, 0.8, 8, billboard.Vec3{})
//	cam.AttachControl()
//
//	sheet, err := billboard.LoadSpriteSheet(assets, billboard.SpriteSheetConfig{
//		Path: "player.png", FrameWidth: 64, FrameHeight: 64,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	players, _ := scene.NewSpriteManager("players", sheet, 8, 64)
//	hero, _ := players.NewSprite("hero")
//	hero.PlayAnimation(0, 40, true, 100*time.Millisecond, nil)
//
//	scene.OnPointerDown(func(ctx billboard.PointerContext) {
//		if pick := scene.PickSprite(ctx.ScreenX, ctx.ScreenY); pick.Hit {
//			pick.PickedSprite.Angle += 0.5
//		}
//	})
//
//	billboard.Run(scene, billboard.RunConfig{Title: "demo", Width: 800, Height: 600})
//
// For full control, wrap the scene with [NewGame] and register your own
// resize listener, or implement [ebiten.Game] yourself and call
// [Scene.Update], [Scene.Draw] and [Scene.Resize] directly.
//
// # Events
//
// Pointer, animation-end, and resize events are delivered to scene-level
// callbacks and, when an [EventSink] is set, forwarded to it. The
// billboard/ecs package provides a [Donburi] sink.
//
// # Logging
//
// The package is silent by default. Call [SetLogger] with a [log/slog]
// logger to see lifecycle and per-frame debug output.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package billboard
