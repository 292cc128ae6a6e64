/*
Package yangmap is a set of libraries for mapping native, indentation
structured device configuration onto YANG modelled documents.

Doing the heavy lifting of indentation lexing, schema shaped composition
and recursive extraction, these libraries allow vendor configuration
translators to be written declaratively: a composition model describes
how each schema subtree is populated from the native configuration tree,
and the mapping engine walks the two together.

Raw configuration text is lexed by the native package into a generic
ordered tree. A Parser (see the parser sub-directory) walks one or more
composition models (see mapping) against that tree, assembles an ordered
result document, and hands it to a schema authority (see yang) for
validation and canonical XML rendering.

See the openconfig sub-directory for a complete profile mapping IOS style
interface configuration onto an openconfig-interfaces subset.
*/
package yangmap
