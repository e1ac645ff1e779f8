/*
Package domain contains the data model shared by every stage of local-state induction.

It defines the planning domain as consumed by the learner (types, operators,
expression trees, predicates), the observed trace corpus (worlds, objects,
plans, grounded actions) and the induced model (transitions, states, hidden
parameters). This package is kept pure and free of I/O, following the
Hexagonal Architecture split used by the adapters.

# Key Entities

  - Domain: type hierarchy, predicate table and operators with mutable precondition/effect trees.
  - Corpus: worlds of typed objects and plans of grounded Actions.
  - Transition: an (operator, parameter position, phase) triple, the unit merged into states.
  - Model: the induced machines, one per leaf type, with their hidden parameters.
*/
package domain
